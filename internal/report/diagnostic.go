// Package report turns dispatch diagnostics into console lines and structured log records.
package report

import (
	"github.com/tyemirov/tk/internal/managers"
)

// Code classifies a dispatch diagnostic.
type Code string

// Diagnostic codes emitted by the dispatcher.
const (
	CodeManagerNotDetected  Code = "manager_not_detected"
	CodeManagerNotAvailable Code = "manager_not_available"
	CodeManagerNotInvokable Code = "manager_not_invokable"
	CodeVerbUnsupported     Code = "verb_unsupported"
	CodeNoRunnableManagers  Code = "no_runnable_managers"
	CodeStartConflict       Code = "start_conflict"
	CodeExecutionStarted    Code = "execution_started"
	CodeExecutionFailure    Code = "execution_failure"
	CodeLaunchFailure       Code = "launch_failure"
)

// Level expresses diagnostic severity.
type Level string

// Supported diagnostic levels.
const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Diagnostic is a single user-visible dispatch event.
type Diagnostic struct {
	Code    Code
	Level   Level
	Manager managers.Identifier
	Verb    managers.Verb
	Message string
	Details map[string]string
}

// Reporter receives diagnostics as they are produced.
type Reporter interface {
	Report(diagnostic Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(diagnostic Diagnostic)

// Report calls the function.
func (reporterFunc ReporterFunc) Report(diagnostic Diagnostic) {
	reporterFunc(diagnostic)
}

// Recorder collects diagnostics in emission order.
type Recorder struct {
	diagnostics []Diagnostic
}

// Report appends the diagnostic.
func (recorder *Recorder) Report(diagnostic Diagnostic) {
	recorder.diagnostics = append(recorder.diagnostics, diagnostic)
}

// Diagnostics returns the recorded diagnostics.
func (recorder *Recorder) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), recorder.diagnostics...)
}

// Codes returns the recorded diagnostic codes.
func (recorder *Recorder) Codes() []Code {
	codes := make([]Code, 0, len(recorder.diagnostics))
	for _, diagnostic := range recorder.diagnostics {
		codes = append(codes, diagnostic.Code)
	}
	return codes
}
