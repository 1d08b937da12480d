// Package dispatch resolves a verb against the detected managers and runs the matching commands.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tyemirov/tk/internal/execshell"
	"github.com/tyemirov/tk/internal/managers"
	"github.com/tyemirov/tk/internal/report"
)

const (
	registryNotConfiguredMessageConstant = "dispatcher registry not configured"
	executorNotConfiguredMessageConstant = "dispatcher command executor not configured"
	unknownVerbErrorTemplateConstant     = "unknown verb %q"

	notInvokableMessageTemplateConstant     = "%s command not available for %s, install it from %s"
	noRunnableManagersMessageConstant       = "no runnable manager detected"
	managerNotAvailableMessageTemplate      = "%s not available"
	startConflictMessageTemplateConstant    = "failed to run %s because of multiple %s-capable managers: %s"
	verbUnsupportedMessageTemplateConstant  = "%s does not support %s"
	executionStartedMessageTemplateConstant = "execute %s from %s"
	executionFailureMessageTemplateConstant = "%s %s failed: %v"
	launchFailureMessageTemplateConstant    = "%s %s could not be started: %v"
	skippedVerbLogMessageConstant           = "verb skipped without an explicit manager"
	runnableSetLogMessageConstant           = "runnable managers resolved"

	managerListSeparatorConstant     = ","
	commandLineDetailKeyConstant     = "command"
	exitCodeDetailKeyConstant        = "exit_code"
	managersDetailKeyConstant        = "managers"
	markerDetailKeyConstant          = "marker"
	installReferenceDetailKey        = "install_reference"
	verbLogFieldConstant             = "verb"
	runnableManagersLogFieldConstant = "runnable_managers"
)

var (
	// ErrRegistryNotConfigured indicates the manager registry dependency was missing.
	ErrRegistryNotConfigured = errors.New(registryNotConfiguredMessageConstant)
	// ErrExecutorNotConfigured indicates the command executor dependency was missing.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// Registry exposes the registered managers in registry order.
type Registry interface {
	Managers() []managers.Manager
}

// CommandExecutor runs a literal command line.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// Dependencies supplies the collaborators used by the dispatcher.
type Dependencies struct {
	Registry         Registry
	Executor         CommandExecutor
	Reporter         report.Reporter
	Logger           *zap.Logger
	WorkingDirectory string
	OperatingSystem  string
	Clock            func() time.Time
}

// Request names the verb to run and, optionally, the single manager to run it on.
type Request struct {
	Manager        managers.Identifier
	Verb           managers.Verb
	ExtraArguments []string
	Verbose        bool
}

// Dispatcher applies verbs to the managers detected in a working directory.
type Dispatcher struct {
	registry         Registry
	executor         CommandExecutor
	reporter         report.Reporter
	logger           *zap.Logger
	workingDirectory string
	operatingSystem  string
	clock            func() time.Time
}

// NewDispatcher validates dependencies and fills optional ones with defaults.
func NewDispatcher(dependencies Dependencies) (*Dispatcher, error) {
	if dependencies.Registry == nil {
		return nil, ErrRegistryNotConfigured
	}
	if dependencies.Executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = report.ReporterFunc(func(report.Diagnostic) {})
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	operatingSystem := dependencies.OperatingSystem
	if len(operatingSystem) == 0 {
		operatingSystem = runtime.GOOS
	}
	clock := dependencies.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Dispatcher{
		registry:         dependencies.Registry,
		executor:         dependencies.Executor,
		reporter:         reporter,
		logger:           logger,
		workingDirectory: strings.TrimSpace(dependencies.WorkingDirectory),
		operatingSystem:  operatingSystem,
		clock:            clock,
	}, nil
}

// Dispatch runs the request. The error return is reserved for invalid requests; runtime gaps become diagnostics.
func (dispatcher *Dispatcher) Dispatch(executionContext context.Context, request Request) (Outcome, error) {
	verb, knownVerb := managers.ParseVerb(string(request.Verb))
	if !knownVerb {
		return Outcome{}, fmt.Errorf(unknownVerbErrorTemplateConstant, request.Verb)
	}
	request.Verb = verb

	run := &dispatchRun{dispatcher: dispatcher, outcome: Outcome{Request: request, StartedAt: dispatcher.clock()}}
	run.dispatch(executionContext)
	run.outcome.CompletedAt = dispatcher.clock()
	return run.outcome, nil
}

type dispatchRun struct {
	dispatcher *Dispatcher
	outcome    Outcome
}

func (run *dispatchRun) dispatch(executionContext context.Context) {
	request := run.outcome.Request
	runnable, detected := run.runnableSet()
	run.dispatcher.logger.Debug(runnableSetLogMessageConstant,
		zap.String(verbLogFieldConstant, request.Verb.String()),
		zap.Strings(runnableManagersLogFieldConstant, identifierNames(runnable)),
	)

	if len(runnable) == 0 {
		run.report(report.Diagnostic{
			Code:    report.CodeNoRunnableManagers,
			Level:   report.LevelWarn,
			Verb:    request.Verb,
			Message: noRunnableManagersMessageConstant,
		})
		return
	}

	if len(request.Manager) > 0 {
		for _, manager := range runnable {
			if manager.Identifier() == request.Manager {
				run.execute(executionContext, manager)
				return
			}
		}
		code := report.CodeManagerNotDetected
		if detected[request.Manager] {
			code = report.CodeManagerNotAvailable
		}
		run.report(report.Diagnostic{
			Code:    code,
			Level:   report.LevelWarn,
			Manager: request.Manager,
			Verb:    request.Verb,
			Message: fmt.Sprintf(managerNotAvailableMessageTemplate, request.Manager),
		})
		return
	}

	switch PolicyFor(request.Verb) {
	case PolicySkip:
		run.dispatcher.logger.Debug(skippedVerbLogMessageConstant, zap.String(verbLogFieldConstant, request.Verb.String()))
	case PolicySingletonOnly:
		if len(runnable) == 1 {
			run.execute(executionContext, runnable[0])
			return
		}
		names := strings.Join(identifierNames(runnable), managerListSeparatorConstant)
		run.report(report.Diagnostic{
			Code:    report.CodeStartConflict,
			Level:   report.LevelWarn,
			Verb:    request.Verb,
			Message: fmt.Sprintf(startConflictMessageTemplateConstant, request.Verb, request.Verb, names),
			Details: map[string]string{managersDetailKeyConstant: names},
		})
	default:
		for _, manager := range runnable {
			run.execute(executionContext, manager)
		}
	}
}

// runnableSet returns detected and invokable managers in registry order, plus every detected identifier.
func (run *dispatchRun) runnableSet() ([]managers.Manager, map[managers.Identifier]bool) {
	runnable := make([]managers.Manager, 0)
	detected := make(map[managers.Identifier]bool)
	for _, manager := range run.dispatcher.registry.Managers() {
		if !manager.Detected(run.dispatcher.workingDirectory) {
			continue
		}
		detected[manager.Identifier()] = true
		if !manager.Invokable() {
			definition := manager.Definition()
			run.report(report.Diagnostic{
				Code:    report.CodeManagerNotInvokable,
				Level:   report.LevelWarn,
				Manager: manager.Identifier(),
				Message: fmt.Sprintf(notInvokableMessageTemplateConstant, manager.Identifier(), definition.MarkerLabel(), definition.InstallReference),
				Details: map[string]string{
					markerDetailKeyConstant:   definition.MarkerLabel(),
					installReferenceDetailKey: definition.InstallReference,
				},
			})
			continue
		}
		runnable = append(runnable, manager)
	}
	return runnable, detected
}

func (run *dispatchRun) execute(executionContext context.Context, manager managers.Manager) {
	request := run.outcome.Request
	identifier := manager.Identifier()

	templateCommand, supported := manager.Command(request.Verb)
	if !supported {
		run.report(report.Diagnostic{
			Code:    report.CodeVerbUnsupported,
			Level:   report.LevelWarn,
			Manager: identifier,
			Verb:    request.Verb,
			Message: fmt.Sprintf(verbUnsupportedMessageTemplateConstant, identifier, request.Verb),
		})
		run.outcome.Executions = append(run.outcome.Executions, ManagerOutcome{
			Manager: identifier,
			Verb:    request.Verb,
			Status:  StatusSkipped,
		})
		return
	}

	commandLine := AppendArguments(templateCommand, request.ExtraArguments, run.dispatcher.operatingSystem)
	run.report(report.Diagnostic{
		Code:    report.CodeExecutionStarted,
		Level:   report.LevelInfo,
		Manager: identifier,
		Verb:    request.Verb,
		Message: fmt.Sprintf(executionStartedMessageTemplateConstant, request.Verb, identifier),
		Details: map[string]string{commandLineDetailKeyConstant: commandLine},
	})

	command := execshell.ShellCommand{
		CommandLine: commandLine,
		Details: execshell.CommandDetails{
			WorkingDirectory: run.dispatcher.workingDirectory,
			StreamOutput:     request.Verbose,
		},
	}
	startedAt := run.dispatcher.clock()
	result, executionError := run.dispatcher.executor.Execute(executionContext, command)
	managerOutcome := ManagerOutcome{
		Manager:        identifier,
		Verb:           request.Verb,
		CommandLine:    commandLine,
		Status:         StatusSucceeded,
		ExitCode:       result.ExitCode,
		StandardOutput: result.StandardOutput,
		StandardError:  result.StandardError,
		Duration:       run.dispatcher.clock().Sub(startedAt),
	}

	switch {
	case executionError != nil:
		managerOutcome.Status = StatusFailed
		managerOutcome.ExitCode = launchFailureExitCodeConstant
		managerOutcome.LaunchFailed = true
		managerOutcome.Error = executionError
		run.report(report.Diagnostic{
			Code:    report.CodeLaunchFailure,
			Level:   report.LevelError,
			Manager: identifier,
			Verb:    request.Verb,
			Message: fmt.Sprintf(launchFailureMessageTemplateConstant, identifier, request.Verb, rootCause(executionError)),
			Details: map[string]string{commandLineDetailKeyConstant: commandLine},
		})
	case !result.Succeeded():
		failure := execshell.CommandFailedError{Command: command, Result: result}
		managerOutcome.Status = StatusFailed
		managerOutcome.Error = failure
		run.report(report.Diagnostic{
			Code:    report.CodeExecutionFailure,
			Level:   report.LevelError,
			Manager: identifier,
			Verb:    request.Verb,
			Message: fmt.Sprintf(executionFailureMessageTemplateConstant, identifier, request.Verb, failure),
			Details: map[string]string{
				commandLineDetailKeyConstant: commandLine,
				exitCodeDetailKeyConstant:    strconv.Itoa(result.ExitCode),
			},
		})
	}

	run.outcome.Executions = append(run.outcome.Executions, managerOutcome)
}

func (run *dispatchRun) report(diagnostic report.Diagnostic) {
	run.outcome.Diagnostics = append(run.outcome.Diagnostics, diagnostic)
	run.dispatcher.reporter.Report(diagnostic)
}

func identifierNames(registered []managers.Manager) []string {
	names := make([]string, 0, len(registered))
	for _, manager := range registered {
		names = append(names, manager.Identifier().String())
	}
	return names
}

func rootCause(err error) error {
	var executionError execshell.CommandExecutionError
	if errors.As(err, &executionError) && executionError.Cause != nil {
		return executionError.Cause
	}
	return err
}
