package managers

import (
	"errors"
	"fmt"
	"strings"
)

const (
	duplicateIdentifierErrorTemplateConstant = "manager %q registered more than once"
	unknownIdentifierErrorTemplateConstant   = "unknown manager %q"
	unknownVerbErrorTemplateConstant         = "manager %q: unknown verb %q"
)

// ErrEmptyIdentifier indicates a definition without an identifier.
var ErrEmptyIdentifier = errors.New("manager identifier not provided")

// Registry holds the process-wide, immutable set of managers in registry order.
type Registry struct {
	managers []Manager
	index    map[Identifier]Manager
}

// NewRegistry builds a registry from the provided definitions.
func NewRegistry(definitions []Definition, dependencies ProbeDependencies) (*Registry, error) {
	registry := &Registry{
		managers: make([]Manager, 0, len(definitions)),
		index:    make(map[Identifier]Manager, len(definitions)),
	}
	for _, definition := range definitions {
		if len(definition.Identifier) == 0 {
			return nil, ErrEmptyIdentifier
		}
		if _, exists := registry.index[definition.Identifier]; exists {
			return nil, fmt.Errorf(duplicateIdentifierErrorTemplateConstant, definition.Identifier)
		}
		manager := newManager(definition, dependencies)
		registry.managers = append(registry.managers, manager)
		registry.index[definition.Identifier] = manager
	}
	return registry, nil
}

// NewDefaultRegistry builds a registry from the built-in definitions.
func NewDefaultRegistry(dependencies ProbeDependencies) *Registry {
	registry, _ := NewRegistry(DefaultDefinitions(), dependencies)
	return registry
}

// Managers returns the registered managers in registry order.
func (registry *Registry) Managers() []Manager {
	if registry == nil {
		return nil
	}
	return append([]Manager(nil), registry.managers...)
}

// Lookup returns the manager registered under the identifier.
func (registry *Registry) Lookup(identifier Identifier) (Manager, bool) {
	if registry == nil {
		return nil, false
	}
	manager, exists := registry.index[identifier]
	return manager, exists
}

// Override adjusts a built-in definition from user configuration.
type Override struct {
	Disabled bool
	Commands map[string]string
}

// ApplyOverrides returns definitions with disabled managers removed and command entries replaced or added.
// An empty command string removes the verb from the manager's table.
func ApplyOverrides(definitions []Definition, overrides map[string]Override) ([]Definition, error) {
	normalizedOverrides := make(map[Identifier]Override, len(overrides))
	for rawIdentifier, override := range overrides {
		identifier, known := ParseIdentifier(rawIdentifier)
		if !known {
			return nil, fmt.Errorf(unknownIdentifierErrorTemplateConstant, strings.TrimSpace(rawIdentifier))
		}
		normalizedOverrides[identifier] = override
	}

	adjusted := make([]Definition, 0, len(definitions))
	for _, definition := range definitions {
		override, exists := normalizedOverrides[definition.Identifier]
		if !exists {
			adjusted = append(adjusted, definition.Clone())
			continue
		}
		if override.Disabled {
			continue
		}

		updated := definition.Clone()
		if updated.Commands == nil {
			updated.Commands = CommandTable{}
		}
		for rawVerb, commandLine := range override.Commands {
			verb, knownVerb := ParseVerb(rawVerb)
			if !knownVerb {
				return nil, fmt.Errorf(unknownVerbErrorTemplateConstant, definition.Identifier, strings.TrimSpace(rawVerb))
			}
			trimmedCommandLine := strings.TrimSpace(commandLine)
			if len(trimmedCommandLine) == 0 {
				delete(updated.Commands, verb)
				continue
			}
			updated.Commands[verb] = trimmedCommandLine
		}
		adjusted = append(adjusted, updated)
	}
	return adjusted, nil
}
