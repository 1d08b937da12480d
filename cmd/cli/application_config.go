package cli

import (
	"fmt"

	"github.com/tyemirov/tk/internal/managers"
)

const registryConstructionErrorTemplateConstant = "unable to build manager registry: %w"

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration             `mapstructure:"common"`
	Managers map[string]ApplicationManagerConfiguration `mapstructure:"managers"`
}

// ApplicationCommonConfiguration stores logging and execution defaults shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Verbose   bool   `mapstructure:"verbose"`
}

// ApplicationManagerConfiguration adjusts one built-in manager.
type ApplicationManagerConfiguration struct {
	Disabled bool              `mapstructure:"disabled"`
	Commands map[string]string `mapstructure:"commands"`
}

// ManagerOverrides converts the managers section into registry overrides.
func (configuration ApplicationConfiguration) ManagerOverrides() map[string]managers.Override {
	overrides := make(map[string]managers.Override, len(configuration.Managers))
	for identifier, managerConfiguration := range configuration.Managers {
		commands := make(map[string]string, len(managerConfiguration.Commands))
		for verb, commandLine := range managerConfiguration.Commands {
			commands[verb] = commandLine
		}
		overrides[identifier] = managers.Override{
			Disabled: managerConfiguration.Disabled,
			Commands: commands,
		}
	}
	return overrides
}

// BuildRegistry applies the configured overrides to the built-in definitions.
func (configuration ApplicationConfiguration) BuildRegistry(dependencies managers.ProbeDependencies) (*managers.Registry, error) {
	definitions, overrideError := managers.ApplyOverrides(managers.DefaultDefinitions(), configuration.ManagerOverrides())
	if overrideError != nil {
		return nil, fmt.Errorf(registryConstructionErrorTemplateConstant, overrideError)
	}
	registry, registryError := managers.NewRegistry(definitions, dependencies)
	if registryError != nil {
		return nil, fmt.Errorf(registryConstructionErrorTemplateConstant, registryError)
	}
	return registry, nil
}
