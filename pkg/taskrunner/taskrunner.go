package taskrunner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tyemirov/tk/internal/dispatch"
)

// Executor runs a single dispatch request.
type Executor interface {
	Run(ctx context.Context, request dispatch.Request) (dispatch.Outcome, error)
}

// Factory constructs an Executor given task runner dependencies.
type Factory func(Dependencies) Executor

// Dependencies carries the dispatcher collaborators and the writers used for summaries.
type Dependencies struct {
	Dispatch       dispatch.Dependencies
	Output         io.Writer
	Errors         io.Writer
	DisableSummary bool
}

type dispatcherAdapter struct {
	dependencies dispatch.Dependencies
}

func (adapter dispatcherAdapter) Run(ctx context.Context, request dispatch.Request) (dispatch.Outcome, error) {
	dispatcher, constructionError := dispatch.NewDispatcher(adapter.dependencies)
	if constructionError != nil {
		return dispatch.Outcome{}, fmt.Errorf("taskrunner.dispatcher: %w", constructionError)
	}
	return dispatcher.Dispatch(ctx, request)
}

// Resolve returns either the provided factory result or a default dispatcher-backed runner.
func Resolve(factory Factory, dependencies Dependencies) Executor {
	var base Executor
	if factory != nil {
		base = factory(dependencies)
	}
	if base == nil {
		base = dispatcherAdapter{dependencies: dependencies.Dispatch}
	}
	return summaryExecutor{
		delegate:     base,
		dependencies: dependencies,
	}
}

type summaryExecutor struct {
	delegate     Executor
	dependencies Dependencies
}

func (executor summaryExecutor) Run(ctx context.Context, request dispatch.Request) (dispatch.Outcome, error) {
	outcome, err := executor.delegate.Run(ctx, request)
	if err == nil {
		executor.printSummary(outcome)
	}
	return outcome, err
}

func (executor summaryExecutor) printSummary(outcome dispatch.Outcome) {
	if executor.dependencies.DisableSummary {
		return
	}
	writer := executor.summaryWriter()
	if writer == nil {
		return
	}

	summary := RenderSummaryLine(outcome)
	if len(strings.TrimSpace(summary)) == 0 {
		return
	}
	fmt.Fprintln(writer, summary)
}

func (executor summaryExecutor) summaryWriter() io.Writer {
	if executor.dependencies.Errors != nil {
		return executor.dependencies.Errors
	}
	if executor.dependencies.Output != nil {
		return executor.dependencies.Output
	}
	return nil
}
