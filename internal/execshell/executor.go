package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
	commandLineMissingMessageConstant         = "shell command line not provided"
	commandStartMessageConstant               = "command execution starting"
	commandSuccessMessageConstant             = "command execution completed"
	commandFailureMessageConstant             = "command returned non-zero status"
	commandRunnerErrorMessageConstant         = "command execution error"
	commandLineFieldNameConstant              = "command"
	workingDirectoryFieldNameConstant         = "working_directory"
	streamOutputFieldNameConstant             = "stream_output"
	exitCodeFieldNameConstant                 = "exit_code"
	standardErrorFieldNameConstant            = "stderr"
	durationFieldNameConstant                 = "duration"
	failureDetailLineLimitConstant            = 3
	failureDetailSeparatorConstant            = " | "
)

// CommandDetails describes command invocation properties.
type CommandDetails struct {
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StreamOutput         bool
}

// ShellCommand represents a literal command line handed to the OS shell.
type ShellCommand struct {
	CommandLine string
	Details     CommandDetails
}

// ExecutionResult captures observable command results.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
	Duration       time.Duration
}

// Succeeded reports whether the command exited with status zero.
func (result ExecutionResult) Succeeded() bool {
	return result.ExitCode == 0
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ShellExecutor orchestrates running shell commands with logging.
type ShellExecutor struct {
	commandRunner        CommandRunner
	logger               *zap.Logger
	humanReadableLogging bool
	messageFormatter     CommandMessageFormatter
}

var (
	// ErrLoggerNotConfigured indicates the logger dependency was missing.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates the command runner dependency was missing.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
	// ErrCommandLineMissing indicates the command line was empty.
	ErrCommandLineMissing = errors.New(commandLineMissingMessageConstant)
)

// CommandFailedError provides details about commands exiting with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

const commandFailureErrorMessageTemplateConstant = "%s exited with code %d"

// Error describes the failure in a readable format.
func (commandError CommandFailedError) Error() string {
	baseMessage := fmt.Sprintf(commandFailureErrorMessageTemplateConstant, commandError.Command.CommandLine, commandError.Result.ExitCode)

	detail := strings.TrimSpace(commandError.Result.StandardError)
	if len(detail) == 0 {
		detail = strings.TrimSpace(commandError.Result.StandardOutput)
	}
	if summary := summarizeDetail(detail); len(summary) > 0 {
		baseMessage = fmt.Sprintf("%s: %s", baseMessage, summary)
	}
	return baseMessage
}

// CommandExecutionError wraps failures to launch the process.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

const commandExecutionErrorMessageTemplateConstant = "%s could not be started"

// Error describes the underlying runner failure.
func (executionError CommandExecutionError) Error() string {
	message := fmt.Sprintf(commandExecutionErrorMessageTemplateConstant, executionError.Command.CommandLine)
	if executionError.Cause != nil {
		message = fmt.Sprintf("%s: %v", message, executionError.Cause)
	}
	return message
}

// Unwrap exposes the underlying error.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// NewShellExecutor builds an executor for the provided runner and logger.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, humanReadableLogging bool) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{
		commandRunner:        commandRunner,
		logger:               logger,
		humanReadableLogging: humanReadableLogging,
		messageFormatter:     CommandMessageFormatter{},
	}, nil
}

// Execute runs the command line and logs lifecycle events.
// A nonzero exit status is returned as a result with a nil error; only a launch failure is an error.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	command.CommandLine = strings.TrimSpace(command.CommandLine)
	if len(command.CommandLine) == 0 {
		return ExecutionResult{}, ErrCommandLineMissing
	}

	if executor.humanReadableLogging {
		executor.logger.Info(executor.messageFormatter.BuildStartedMessage(command))
	} else {
		executor.logger.Info(commandStartMessageConstant,
			zap.String(commandLineFieldNameConstant, command.CommandLine),
			zap.String(workingDirectoryFieldNameConstant, command.Details.WorkingDirectory),
			zap.Bool(streamOutputFieldNameConstant, command.Details.StreamOutput),
		)
	}

	executionResult, runnerError := executor.commandRunner.Run(executionContext, command)
	if runnerError != nil {
		if executor.humanReadableLogging {
			executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, runnerError))
		} else {
			executor.logger.Error(commandRunnerErrorMessageConstant,
				zap.String(commandLineFieldNameConstant, command.CommandLine),
				zap.Error(runnerError),
			)
		}
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runnerError}
	}

	if !executionResult.Succeeded() {
		if executor.humanReadableLogging {
			executor.logger.Warn(executor.messageFormatter.BuildFailureMessage(command, executionResult))
		} else {
			executor.logger.Warn(commandFailureMessageConstant,
				zap.String(commandLineFieldNameConstant, command.CommandLine),
				zap.Int(exitCodeFieldNameConstant, executionResult.ExitCode),
				zap.String(standardErrorFieldNameConstant, executionResult.StandardError),
			)
		}
		return executionResult, nil
	}

	if executor.humanReadableLogging {
		executor.logger.Info(executor.messageFormatter.BuildSuccessMessage(command))
	} else {
		executor.logger.Info(commandSuccessMessageConstant,
			zap.String(commandLineFieldNameConstant, command.CommandLine),
			zap.Int(exitCodeFieldNameConstant, executionResult.ExitCode),
			zap.Duration(durationFieldNameConstant, executionResult.Duration),
		)
	}
	return executionResult, nil
}

func summarizeDetail(detail string) string {
	if len(detail) == 0 {
		return ""
	}
	lines := strings.Split(detail, "\n")
	if len(lines) > failureDetailLineLimitConstant {
		lines = lines[:failureDetailLineLimitConstant]
	}
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return strings.Join(normalized, failureDetailSeparatorConstant)
}
