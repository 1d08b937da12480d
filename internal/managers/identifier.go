package managers

import "strings"

// Identifier names a build or package tool known to tk.
type Identifier string

// Supported manager identifiers, listed in registry order.
const (
	IdentifierMaven    Identifier = "maven"
	IdentifierGradle   Identifier = "gradle"
	IdentifierSBT      Identifier = "sbt"
	IdentifierNPM      Identifier = "npm"
	IdentifierCargo    Identifier = "cargo"
	IdentifierCMake    Identifier = "cmake"
	IdentifierComposer Identifier = "composer"
	IdentifierGo       Identifier = "go"
	IdentifierSwift    Identifier = "swift"
	IdentifierBundle   Identifier = "bundle"
)

var knownIdentifiers = []Identifier{
	IdentifierMaven,
	IdentifierGradle,
	IdentifierSBT,
	IdentifierNPM,
	IdentifierCargo,
	IdentifierCMake,
	IdentifierComposer,
	IdentifierGo,
	IdentifierSwift,
	IdentifierBundle,
}

var identifierAliases = map[string]Identifier{
	"mvn":     IdentifierMaven,
	"bundler": IdentifierBundle,
	"golang":  IdentifierGo,
}

// KnownIdentifiers returns every supported identifier in registry order.
func KnownIdentifiers() []Identifier {
	return append([]Identifier(nil), knownIdentifiers...)
}

// ParseIdentifier normalizes a user-supplied manager name.
func ParseIdentifier(raw string) (Identifier, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if len(normalized) == 0 {
		return "", false
	}
	for _, identifier := range knownIdentifiers {
		if string(identifier) == normalized {
			return identifier, true
		}
	}
	if aliased, exists := identifierAliases[normalized]; exists {
		return aliased, true
	}
	return "", false
}

// String returns the identifier name.
func (identifier Identifier) String() string {
	return string(identifier)
}
