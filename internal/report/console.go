package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tyemirov/tk/internal/utils"
)

const (
	consolePrefixConstant          = "[tk]"
	consoleLineTemplateConstant    = "%s %s"
	warningColorConstant           = "1"
	noticeColorConstant            = "4"
	diagnosticCodeFieldConstant    = "code"
	diagnosticLevelFieldConstant   = "level_name"
	diagnosticManagerFieldConstant = "manager"
	diagnosticVerbFieldConstant    = "verb"
	diagnosticDetailsPrefix        = "detail_"
)

// ConsoleReporter writes "[tk] <message>" lines and mirrors each diagnostic into the diagnostic logger.
type ConsoleReporter struct {
	writer       io.Writer
	logger       *zap.Logger
	warningStyle lipgloss.Style
	noticeStyle  lipgloss.Style
}

// NewConsoleReporter builds a reporter writing to writer, or standard error when writer is nil.
func NewConsoleReporter(writer io.Writer, logger *zap.Logger) *ConsoleReporter {
	if writer == nil {
		writer = os.Stderr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := lipgloss.NewRenderer(writer)
	return &ConsoleReporter{
		writer:       utils.NewFlushingWriter(writer),
		logger:       logger,
		warningStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(warningColorConstant)),
		noticeStyle:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(noticeColorConstant)),
	}
}

// Report renders the diagnostic on the console and logs it.
func (reporter *ConsoleReporter) Report(diagnostic Diagnostic) {
	style := reporter.noticeStyle
	if diagnostic.Level == LevelWarn || diagnostic.Level == LevelError {
		style = reporter.warningStyle
	}
	line := fmt.Sprintf(consoleLineTemplateConstant, consolePrefixConstant, diagnostic.Message)
	_, _ = fmt.Fprintln(reporter.writer, style.Render(line))

	reporter.log(diagnostic)
}

// Failures are already on the console, so the log copy stays below the default error threshold.
func (reporter *ConsoleReporter) log(diagnostic Diagnostic) {
	fields := []zap.Field{
		zap.String(diagnosticCodeFieldConstant, string(diagnostic.Code)),
		zap.String(diagnosticLevelFieldConstant, string(diagnostic.Level)),
	}
	if len(diagnostic.Manager) > 0 {
		fields = append(fields, zap.String(diagnosticManagerFieldConstant, diagnostic.Manager.String()))
	}
	if len(diagnostic.Verb) > 0 {
		fields = append(fields, zap.String(diagnosticVerbFieldConstant, diagnostic.Verb.String()))
	}
	detailKeys := make([]string, 0, len(diagnostic.Details))
	for key := range diagnostic.Details {
		detailKeys = append(detailKeys, key)
	}
	sort.Strings(detailKeys)
	for _, key := range detailKeys {
		fields = append(fields, zap.String(diagnosticDetailsPrefix+key, diagnostic.Details[key]))
	}

	switch diagnostic.Level {
	case LevelWarn, LevelError:
		reporter.logger.Warn(diagnostic.Message, fields...)
	default:
		reporter.logger.Info(diagnostic.Message, fields...)
	}
}
