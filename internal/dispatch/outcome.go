package dispatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/tyemirov/tk/internal/managers"
	"github.com/tyemirov/tk/internal/report"
)

// Status is the result of one manager execution.
type Status string

// Execution statuses.
const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

const (
	dispatchFailedErrorTemplateConstant = "%s failed for %s"
	failureDescriptionTemplateConstant  = "%s (exit code %d)"
	launchFailureDescriptionTemplate    = "%s (not started)"
	failureSeparatorConstant            = ", "
	launchFailureExitCodeConstant       = -1
)

// ManagerOutcome records one verb applied to one manager.
type ManagerOutcome struct {
	Manager        managers.Identifier
	Verb           managers.Verb
	CommandLine    string
	Status         Status
	ExitCode       int
	StandardOutput string
	StandardError  string
	Error          error
	Duration       time.Duration
	// LaunchFailed is set when the command could not be started at all.
	LaunchFailed bool
}

// Outcome aggregates a single dispatch.
type Outcome struct {
	Request     Request
	Executions  []ManagerOutcome
	Diagnostics []report.Diagnostic
	StartedAt   time.Time
	CompletedAt time.Time
}

// Succeeded reports whether every attempted execution succeeded. A dispatch with no attempts succeeds.
func (outcome Outcome) Succeeded() bool {
	for _, execution := range outcome.Executions {
		if execution.Status == StatusFailed {
			return false
		}
	}
	return true
}

// Counts returns the number of succeeded, failed, and skipped executions.
func (outcome Outcome) Counts() (int, int, int) {
	succeeded, failed, skipped := 0, 0, 0
	for _, execution := range outcome.Executions {
		switch execution.Status {
		case StatusSucceeded:
			succeeded++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return succeeded, failed, skipped
}

// Attempted returns the number of executions handed to the shell.
func (outcome Outcome) Attempted() int {
	succeeded, failed, _ := outcome.Counts()
	return succeeded + failed
}

// Duration returns the wall time of the dispatch.
func (outcome Outcome) Duration() time.Duration {
	if outcome.CompletedAt.Before(outcome.StartedAt) {
		return 0
	}
	return outcome.CompletedAt.Sub(outcome.StartedAt)
}

// Failures returns the failed executions in dispatch order.
func (outcome Outcome) Failures() []ManagerOutcome {
	failures := make([]ManagerOutcome, 0)
	for _, execution := range outcome.Executions {
		if execution.Status == StatusFailed {
			failures = append(failures, execution)
		}
	}
	return failures
}

// Err returns a DispatchFailedError when any execution failed.
func (outcome Outcome) Err() error {
	failures := outcome.Failures()
	if len(failures) == 0 {
		return nil
	}
	return DispatchFailedError{Verb: outcome.Request.Verb, Failures: failures}
}

// DispatchFailedError lists every manager whose execution failed.
type DispatchFailedError struct {
	Verb     managers.Verb
	Failures []ManagerOutcome
}

// Error names each failed manager with its exit code.
func (dispatchError DispatchFailedError) Error() string {
	descriptions := make([]string, 0, len(dispatchError.Failures))
	for _, failure := range dispatchError.Failures {
		if failure.LaunchFailed {
			descriptions = append(descriptions, fmt.Sprintf(launchFailureDescriptionTemplate, failure.Manager))
			continue
		}
		descriptions = append(descriptions, fmt.Sprintf(failureDescriptionTemplateConstant, failure.Manager, failure.ExitCode))
	}
	return fmt.Sprintf(dispatchFailedErrorTemplateConstant, dispatchError.Verb, strings.Join(descriptions, failureSeparatorConstant))
}

// Unwrap exposes the per-manager causes.
func (dispatchError DispatchFailedError) Unwrap() []error {
	causes := make([]error, 0, len(dispatchError.Failures))
	for _, failure := range dispatchError.Failures {
		if failure.Error != nil {
			causes = append(causes, failure.Error)
		}
	}
	return causes
}
