package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tyemirov/tk/internal/managers"
	"github.com/tyemirov/tk/internal/utils/flags"
	"github.com/tyemirov/tk/pkg/taskrunner"
)

const (
	versionCommandUseNameConstant           = "version"
	versionCommandShortDescriptionConstant  = "Print the tk version"
	versionCommandLongDescriptionConstant   = "version prints the current tk release identifier."
	versionOutputTemplateConstant           = "tk version: %s\n"
	managersCommandUseNameConstant          = "managers"
	managersCommandAliasConstant            = "ls"
	managersCommandShortDescriptionConstant = "List the supported managers and what the working directory shows of them"
	managersCommandLongDescriptionConstant  = "managers reports, for every registered manager, its marker files, executable, whether it is detected in the working directory and invokable from the search path, and the verbs it supports."
	managersFormatFlagNameConstant          = "format"
	managersFormatFlagUsageConstant         = "Output format (table or yaml)."
	managersFormatTableConstant             = "table"
	managersFormatYAMLConstant              = "yaml"
	unsupportedFormatErrorTemplateConstant  = "unsupported output format %q"
	managersEncodeErrorTemplateConstant     = "unable to render managers: %w"
	yamlIndentConstant                      = 2
	markerSeparatorConstant                 = " | "
	verbSeparatorConstant                   = " "
	tableHeaderColorConstant                = "4"
	absentValueConstant                     = "-"
)

var managersTableHeaders = []string{"MANAGER", "MARKERS", "EXECUTABLE", "DETECTED", "INVOKABLE", "PROJECT", "VERBS"}

func (application *Application) registerCommands(cobraCommand *cobra.Command) {
	versionCommand := &cobra.Command{
		Use:           versionCommandUseNameConstant,
		Short:         versionCommandShortDescriptionConstant,
		Long:          versionCommandLongDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			_, printError := fmt.Fprintf(command.OutOrStdout(), versionOutputTemplateConstant, application.versionResolver(command.Context()))
			return printError
		},
	}
	cobraCommand.AddCommand(versionCommand)

	managersCommand := &cobra.Command{
		Use:           managersCommandUseNameConstant,
		Aliases:       []string{managersCommandAliasConstant},
		Short:         managersCommandShortDescriptionConstant,
		Long:          managersCommandLongDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			outputFormat, _, formatError := flags.StringFlag(command, managersFormatFlagNameConstant)
			if formatError != nil {
				return formatError
			}
			return application.runManagersCommand(command, outputFormat)
		},
	}
	managersCommand.Flags().String(managersFormatFlagNameConstant, managersFormatTableConstant, managersFormatFlagUsageConstant)
	cobraCommand.AddCommand(managersCommand)
}

func (application *Application) runManagersCommand(command *cobra.Command, outputFormat string) error {
	registry, registryError := application.configuration.BuildRegistry(application.probeDependencies)
	if registryError != nil {
		return registryError
	}

	dependencies, dependenciesError := taskrunner.BuildDependencies(
		taskrunner.DependenciesConfig{Registry: registry},
		taskrunner.DependenciesOptions{Command: command, WorkingDirectory: application.workingDirectory(command)},
	)
	if dependenciesError != nil {
		return fmt.Errorf(dependenciesErrorTemplateConstant, dependenciesError)
	}

	statuses := managers.Inventory(registry, dependencies.WorkingDirectory)
	return renderManagerStatuses(dependencies.Runner.Output, statuses, outputFormat)
}

func renderManagerStatuses(writer io.Writer, statuses []managers.Status, outputFormat string) error {
	switch strings.ToLower(strings.TrimSpace(outputFormat)) {
	case "", managersFormatTableConstant:
		_, writeError := fmt.Fprintln(writer, buildManagersTable(writer, statuses).Render())
		return writeError
	case managersFormatYAMLConstant:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(statuses); encodeError != nil {
			return fmt.Errorf(managersEncodeErrorTemplateConstant, encodeError)
		}
		return encoder.Close()
	default:
		return fmt.Errorf(unsupportedFormatErrorTemplateConstant, outputFormat)
	}
}

func buildManagersTable(writer io.Writer, statuses []managers.Status) *table.Table {
	renderer := lipgloss.NewRenderer(writer)
	headerStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(tableHeaderColorConstant)).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		project := status.Project
		if len(project) == 0 {
			project = absentValueConstant
		}
		verbs := make([]string, 0, len(status.Verbs))
		for _, verb := range status.Verbs {
			verbs = append(verbs, verb.String())
		}
		rows = append(rows, []string{
			status.Identifier.String(),
			strings.Join(status.MarkerFiles, markerSeparatorConstant),
			status.Executable,
			strconv.FormatBool(status.Detected),
			strconv.FormatBool(status.Invokable),
			project,
			strings.Join(verbs, verbSeparatorConstant),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.NewStyle()).
		Headers(managersTableHeaders...).
		Rows(rows...).
		StyleFunc(func(row int, column int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
