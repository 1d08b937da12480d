package dispatch

import "github.com/tyemirov/tk/internal/managers"

// Policy decides how a verb without an explicit manager is applied to the runnable set.
type Policy string

// Supported policies.
const (
	PolicyBroadcast     Policy = "broadcast"
	PolicySkip          Policy = "skip"
	PolicySingletonOnly Policy = "singleton_only"
)

var verbPolicies = map[managers.Verb]Policy{
	managers.VerbInit:  PolicySkip,
	managers.VerbStart: PolicySingletonOnly,
}

// PolicyFor returns the policy applied when no manager is named.
func PolicyFor(verb managers.Verb) Policy {
	if policy, exists := verbPolicies[verb]; exists {
		return policy
	}
	return PolicyBroadcast
}
