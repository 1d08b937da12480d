package managers

import "strings"

// Verb is an abstract task name shared by every manager.
type Verb string

// Supported verbs.
const (
	VerbInit     Verb = "init"
	VerbInstall  Verb = "install"
	VerbCompile  Verb = "compile"
	VerbBuild    Verb = "build"
	VerbStart    Verb = "start"
	VerbTest     Verb = "test"
	VerbDeps     Verb = "deps"
	VerbDoc      Verb = "doc"
	VerbClean    Verb = "clean"
	VerbOutdated Verb = "outdated"
	VerbUpdate   Verb = "update"
)

var knownVerbs = []Verb{
	VerbInit,
	VerbInstall,
	VerbCompile,
	VerbBuild,
	VerbStart,
	VerbTest,
	VerbDeps,
	VerbDoc,
	VerbClean,
	VerbOutdated,
	VerbUpdate,
}

// KnownVerbs returns every supported verb in canonical order.
func KnownVerbs() []Verb {
	return append([]Verb(nil), knownVerbs...)
}

// KnownVerbNames returns the verb names as plain strings.
func KnownVerbNames() []string {
	names := make([]string, 0, len(knownVerbs))
	for _, verb := range knownVerbs {
		names = append(names, string(verb))
	}
	return names
}

// ParseVerb normalizes a user-supplied verb.
func ParseVerb(raw string) (Verb, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, verb := range knownVerbs {
		if string(verb) == normalized {
			return verb, true
		}
	}
	return "", false
}

// String returns the verb name.
func (verb Verb) String() string {
	return string(verb)
}
