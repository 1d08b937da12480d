package flags

import (
	"strings"

	"github.com/spf13/cobra"
)

const (
	// DirectoryFlagName exposes the shared working directory flag name.
	DirectoryFlagName = "directory"
	// DirectoryFlagShorthand provides the shorthand for the working directory flag.
	DirectoryFlagShorthand = "C"
	// DirectoryFlagUsage describes the shared working directory flag purpose.
	DirectoryFlagUsage = "Directory whose project managers receive the task (default: current directory)"
	// VerboseFlagName exposes the shared verbose flag name.
	VerboseFlagName = "verbose"
	// VerboseFlagShorthand provides the shorthand for the verbose flag.
	VerboseFlagShorthand = "v"
	// VerboseFlagUsage describes the shared verbose flag purpose.
	VerboseFlagUsage = "Stream tool output while tasks run"
)

// DirectoryFlagDefinition captures configuration for the working directory flag.
type DirectoryFlagDefinition struct {
	Name       string
	Shorthand  string
	Usage      string
	Enabled    bool
	Persistent bool
}

// DirectoryFlagValues stores the working directory flag value.
type DirectoryFlagValues struct {
	Directory string
}

// BindDirectoryFlag attaches the working directory flag to the provided command.
func BindDirectoryFlag(command *cobra.Command, defaults DirectoryFlagValues, definition DirectoryFlagDefinition) *DirectoryFlagValues {
	values := DirectoryFlagValues{Directory: strings.TrimSpace(defaults.Directory)}
	if command == nil || !definition.Enabled {
		return &values
	}
	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = DirectoryFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = DirectoryFlagUsage
	}

	targetSet := command.PersistentFlags()
	if !definition.Persistent {
		targetSet = command.Flags()
	}
	if targetSet.Lookup(flagName) == nil {
		targetSet.StringVarP(&values.Directory, flagName, definition.Shorthand, values.Directory, flagUsage)
	}
	return &values
}
