package taskrunner

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/tk/internal/dispatch"
	"github.com/tyemirov/tk/internal/execshell"
	"github.com/tyemirov/tk/internal/managers"
	"github.com/tyemirov/tk/internal/report"
)

// DependenciesConfig captures providers required to build dispatch dependencies.
type DependenciesConfig struct {
	LoggerProvider               func() *zap.Logger
	HumanReadableLoggingProvider func() bool
	Registry                     dispatch.Registry
	ProbeDependencies            managers.ProbeDependencies
	CommandRunner                execshell.CommandRunner
	CommandExecutor              dispatch.CommandExecutor
	ReporterFactory              func(io.Writer, *zap.Logger) report.Reporter
	Clock                        func() time.Time
}

// DependenciesOptions allows per-command overrides when resolving dispatch dependencies.
type DependenciesOptions struct {
	Command          *cobra.Command
	Output           io.Writer
	Errors           io.Writer
	Input            io.Reader
	WorkingDirectory string
	OperatingSystem  string
	DisableSummary   bool
}

// DependenciesResult exposes resolved collaborators along with their task runner wrapper.
type DependenciesResult struct {
	Runner           Dependencies
	Registry         dispatch.Registry
	CommandExecutor  dispatch.CommandExecutor
	Reporter         report.Reporter
	WorkingDirectory string
}

// BuildDependencies resolves the registry, shell executor, reporter, and writers for dispatching.
func BuildDependencies(config DependenciesConfig, options DependenciesOptions) (DependenciesResult, error) {
	logger := resolveLogger(config.LoggerProvider)
	humanReadable := false
	if config.HumanReadableLoggingProvider != nil {
		humanReadable = config.HumanReadableLoggingProvider()
	}

	outputWriter := resolveWriter(options.Output, options.Command, true)
	errorWriter := resolveWriter(options.Errors, options.Command, false)

	workingDirectory, workingDirectoryError := resolveWorkingDirectory(options.WorkingDirectory)
	if workingDirectoryError != nil {
		return DependenciesResult{}, fmt.Errorf("taskrunner.dependencies.working_directory: %w", workingDirectoryError)
	}

	commandExecutor := config.CommandExecutor
	if commandExecutor == nil {
		commandRunner := config.CommandRunner
		if commandRunner == nil {
			commandRunner = &execshell.OSCommandRunner{
				Output: outputWriter,
				Errors: errorWriter,
				Input:  resolveReader(options.Input, options.Command),
			}
		}
		shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, humanReadable)
		if executorError != nil {
			return DependenciesResult{}, fmt.Errorf("taskrunner.dependencies.shell_executor: %w", executorError)
		}
		commandExecutor = shellExecutor
	}

	registry := config.Registry
	if registry == nil {
		registry = managers.NewDefaultRegistry(config.ProbeDependencies)
	}

	var reporter report.Reporter
	if config.ReporterFactory != nil {
		reporter = config.ReporterFactory(errorWriter, logger)
	}
	if reporter == nil {
		reporter = report.NewConsoleReporter(errorWriter, logger)
	}

	operatingSystem := strings.TrimSpace(options.OperatingSystem)
	if len(operatingSystem) == 0 {
		operatingSystem = runtime.GOOS
	}

	runnerDependencies := Dependencies{
		Dispatch: dispatch.Dependencies{
			Registry:         registry,
			Executor:         commandExecutor,
			Reporter:         reporter,
			Logger:           logger,
			WorkingDirectory: workingDirectory,
			OperatingSystem:  operatingSystem,
			Clock:            config.Clock,
		},
		Output:         outputWriter,
		Errors:         errorWriter,
		DisableSummary: options.DisableSummary,
	}

	return DependenciesResult{
		Runner:           runnerDependencies,
		Registry:         registry,
		CommandExecutor:  commandExecutor,
		Reporter:         reporter,
		WorkingDirectory: workingDirectory,
	}, nil
}

func resolveLogger(provider func() *zap.Logger) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveWorkingDirectory(provided string) (string, error) {
	trimmed := strings.TrimSpace(provided)
	if len(trimmed) > 0 {
		return trimmed, nil
	}
	return os.Getwd()
}

func resolveWriter(provided io.Writer, command *cobra.Command, useStdout bool) io.Writer {
	if provided != nil {
		return provided
	}
	if command != nil {
		if useStdout {
			if writer := command.OutOrStdout(); writer != nil && writer != io.Discard {
				return writer
			}
		} else {
			if writer := command.ErrOrStderr(); writer != nil && writer != io.Discard {
				return writer
			}
		}
	}
	if useStdout {
		return os.Stdout
	}
	return os.Stderr
}

func resolveReader(provided io.Reader, command *cobra.Command) io.Reader {
	if provided != nil {
		return provided
	}
	if command != nil {
		return command.InOrStdin()
	}
	return os.Stdin
}
