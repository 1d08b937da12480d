package taskrunner

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/tk/internal/dispatch"
	"github.com/tyemirov/tk/internal/managers"
)

type fakeExecutor struct {
	outcome dispatch.Outcome
	err     error
}

func (executor fakeExecutor) Run(_ context.Context, _ dispatch.Request) (dispatch.Outcome, error) {
	return executor.outcome, executor.err
}

func outcomeWithStatuses(duration time.Duration, statuses ...dispatch.Status) dispatch.Outcome {
	startedAt := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	outcome := dispatch.Outcome{
		Request:     dispatch.Request{Verb: managers.VerbBuild},
		StartedAt:   startedAt,
		CompletedAt: startedAt.Add(duration),
	}
	for _, status := range statuses {
		outcome.Executions = append(outcome.Executions, dispatch.ManagerOutcome{Verb: managers.VerbBuild, Status: status})
	}
	return outcome
}

func TestRenderSummaryLineSkipsSingleManager(t *testing.T) {
	summary := RenderSummaryLine(outcomeWithStatuses(time.Second, dispatch.StatusSucceeded, dispatch.StatusSkipped))
	require.Equal(t, "", summary)
}

func TestRenderSummaryLineFormatsCounts(t *testing.T) {
	summary := RenderSummaryLine(outcomeWithStatuses(
		1500*time.Millisecond,
		dispatch.StatusSucceeded,
		dispatch.StatusFailed,
		dispatch.StatusSkipped,
	))
	require.Equal(t, "Summary: total.managers=3 succeeded=1 failed=1 skipped=1 duration_human=1.5s duration_ms=1500", summary)
}

func TestRenderSummaryLineReportsZeroDuration(t *testing.T) {
	summary := RenderSummaryLine(outcomeWithStatuses(0, dispatch.StatusSucceeded, dispatch.StatusSucceeded))
	require.Contains(t, summary, "duration_human=0s")
	require.Contains(t, summary, "duration_ms=0")
}

func TestSummaryExecutorPrintsSummaryForMultipleManagers(t *testing.T) {
	buffer := &bytes.Buffer{}
	executor := summaryExecutor{
		delegate:     fakeExecutor{outcome: outcomeWithStatuses(100*time.Millisecond, dispatch.StatusSucceeded, dispatch.StatusSucceeded)},
		dependencies: Dependencies{Errors: buffer},
	}

	_, err := executor.Run(context.Background(), dispatch.Request{Verb: managers.VerbBuild})
	require.NoError(t, err)
	require.Contains(t, buffer.String(), "Summary: total.managers=2")
}

func TestSummaryExecutorHonorsDisableSummary(t *testing.T) {
	buffer := &bytes.Buffer{}
	executor := summaryExecutor{
		delegate:     fakeExecutor{outcome: outcomeWithStatuses(time.Second, dispatch.StatusSucceeded, dispatch.StatusFailed)},
		dependencies: Dependencies{Errors: buffer, DisableSummary: true},
	}

	_, err := executor.Run(context.Background(), dispatch.Request{Verb: managers.VerbBuild})
	require.NoError(t, err)
	require.Empty(t, buffer.String())
}

func TestSummaryExecutorFallsBackToOutputWriter(t *testing.T) {
	buffer := &bytes.Buffer{}
	executor := summaryExecutor{
		delegate:     fakeExecutor{outcome: outcomeWithStatuses(time.Second, dispatch.StatusSucceeded, dispatch.StatusSucceeded)},
		dependencies: Dependencies{Output: buffer},
	}

	_, err := executor.Run(context.Background(), dispatch.Request{Verb: managers.VerbBuild})
	require.NoError(t, err)
	require.Contains(t, buffer.String(), "Summary:")
}

func TestSummaryExecutorSkipsSummaryOnError(t *testing.T) {
	buffer := &bytes.Buffer{}
	expectedError := errors.New("unknown verb")
	executor := summaryExecutor{
		delegate: fakeExecutor{
			outcome: outcomeWithStatuses(time.Second, dispatch.StatusSucceeded, dispatch.StatusSucceeded),
			err:     expectedError,
		},
		dependencies: Dependencies{Errors: buffer},
	}

	_, err := executor.Run(context.Background(), dispatch.Request{Verb: managers.VerbBuild})
	require.ErrorIs(t, err, expectedError)
	require.Empty(t, buffer.String())
}

func TestResolvePrefersFactoryExecutor(t *testing.T) {
	factoryOutcome := outcomeWithStatuses(time.Second, dispatch.StatusSkipped)
	var receivedDependencies Dependencies
	factory := func(dependencies Dependencies) Executor {
		receivedDependencies = dependencies
		return fakeExecutor{outcome: factoryOutcome}
	}

	dependencies := Dependencies{DisableSummary: true}
	outcome, err := Resolve(factory, dependencies).Run(context.Background(), dispatch.Request{Verb: managers.VerbBuild})
	require.NoError(t, err)
	require.Equal(t, factoryOutcome, outcome)
	require.True(t, receivedDependencies.DisableSummary)
}

func TestResolveDefaultRunnerReportsMissingCollaborators(t *testing.T) {
	_, err := Resolve(nil, Dependencies{}).Run(context.Background(), dispatch.Request{Verb: managers.VerbBuild})
	require.ErrorIs(t, err, dispatch.ErrRegistryNotConfigured)
}

func dispatchRequest(verb managers.Verb, extraArguments ...string) dispatch.Request {
	return dispatch.Request{Verb: verb, ExtraArguments: extraArguments}
}
