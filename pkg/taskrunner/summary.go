package taskrunner

import (
	"fmt"
	"strings"
	"time"

	"github.com/tyemirov/tk/internal/dispatch"
)

// RenderSummaryLine returns the summary line printed after dispatches attempted on several managers.
func RenderSummaryLine(outcome dispatch.Outcome) string {
	if outcome.Attempted() <= 1 {
		return ""
	}

	succeeded, failed, skipped := outcome.Counts()
	parts := []string{
		fmt.Sprintf("Summary: total.managers=%d", len(outcome.Executions)),
		fmt.Sprintf("succeeded=%d", succeeded),
		fmt.Sprintf("failed=%d", failed),
		fmt.Sprintf("skipped=%d", skipped),
	}

	duration := outcome.Duration()
	durationHuman := duration.Round(time.Millisecond).String()
	if duration < time.Millisecond {
		durationHuman = "0s"
	}

	parts = append(parts, fmt.Sprintf("duration_human=%s", durationHuman))
	parts = append(parts, fmt.Sprintf("duration_ms=%d", duration.Milliseconds()))

	return strings.Join(parts, " ")
}
