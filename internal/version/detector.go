package version

import (
	"context"
	"os"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/tyemirov/tk/internal/execshell"
)

const (
	unknownVersionFallbackConstant            = "unknown"
	buildInfoDevelVersionValue                = "devel"
	semanticVersionPrefixConstant             = "v"
	gitExactDescribeCommandConstant           = "git describe --tags --exact-match"
	gitLongDescribeCommandConstant            = "git describe --tags --long --dirty"
	gitTerminalPromptEnvironmentNameConstant  = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentValueConstant = "0"
)

// LinkedVersion is set at build time with -ldflags "-X github.com/tyemirov/tk/internal/version.LinkedVersion=v1.2.3".
var LinkedVersion string

// BuildInfoProvider exposes runtime build metadata.
type BuildInfoProvider interface {
	Read() (*debug.BuildInfo, bool)
}

// CommandExecutor runs a shell command line.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// Detector resolves application version strings.
type Detector struct {
	buildInfoProvider BuildInfoProvider
	commandExecutor   CommandExecutor
	workingDirectory  string
	linkedVersion     string
}

// Dependencies describes the collaborators required for version detection.
type Dependencies struct {
	BuildInfoProvider BuildInfoProvider
	CommandExecutor   CommandExecutor
	WorkingDirectory  string
	LinkedVersion     string
}

// NewDetector constructs a Detector with the supplied dependencies or sensible defaults.
func NewDetector(dependencies Dependencies) (*Detector, error) {
	provider := dependencies.BuildInfoProvider
	if provider == nil {
		provider = runtimeBuildInfoProvider{}
	}

	executor := dependencies.CommandExecutor
	if executor == nil {
		shellExecutor, creationError := execshell.NewShellExecutor(zap.NewNop(), &execshell.OSCommandRunner{}, false)
		if creationError != nil {
			return nil, creationError
		}
		executor = shellExecutor
	}

	workingDirectory := strings.TrimSpace(dependencies.WorkingDirectory)
	if len(workingDirectory) == 0 {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError == nil {
			workingDirectory = currentDirectory
		}
	}

	linkedVersion := dependencies.LinkedVersion
	if len(strings.TrimSpace(linkedVersion)) == 0 {
		linkedVersion = LinkedVersion
	}

	return &Detector{
		buildInfoProvider: provider,
		commandExecutor:   executor,
		workingDirectory:  workingDirectory,
		linkedVersion:     linkedVersion,
	}, nil
}

// Detect resolves the application version using the supplied dependencies.
func Detect(executionContext context.Context, dependencies Dependencies) string {
	detector, detectorError := NewDetector(dependencies)
	if detectorError != nil {
		return unknownVersionFallbackConstant
	}
	return detector.Version(executionContext)
}

// Version returns the detected application version string.
// Sources are consulted in order: linked version, module build info, exact tag, long describe.
func (detector *Detector) Version(executionContext context.Context) string {
	if detector == nil {
		return unknownVersionFallbackConstant
	}

	if linkedVersion := normalizeSemanticVersion(detector.linkedVersion); len(linkedVersion) > 0 {
		return linkedVersion
	}

	if buildVersion := detector.versionFromBuildInfo(); len(buildVersion) > 0 {
		return buildVersion
	}

	if exactVersion := detector.describeVersion(executionContext, gitExactDescribeCommandConstant); len(exactVersion) > 0 {
		return exactVersion
	}

	if longVersion := detector.describeVersion(executionContext, gitLongDescribeCommandConstant); len(longVersion) > 0 {
		return longVersion
	}

	return unknownVersionFallbackConstant
}

func (detector *Detector) versionFromBuildInfo() string {
	if detector.buildInfoProvider == nil {
		return ""
	}

	buildInfo, available := detector.buildInfoProvider.Read()
	if !available || buildInfo == nil {
		return ""
	}

	trimmedVersion := strings.TrimSpace(buildInfo.Main.Version)
	if len(trimmedVersion) == 0 {
		return ""
	}

	if strings.EqualFold(trimmedVersion, buildInfoDevelVersionValue) || strings.EqualFold(trimmedVersion, "("+buildInfoDevelVersionValue+")") {
		return ""
	}

	return trimmedVersion
}

func (detector *Detector) describeVersion(executionContext context.Context, commandLine string) string {
	if detector.commandExecutor == nil || len(detector.workingDirectory) == 0 {
		return ""
	}

	executionResult, executionError := detector.commandExecutor.Execute(executionContext, execshell.ShellCommand{
		CommandLine: commandLine,
		Details: execshell.CommandDetails{
			WorkingDirectory: detector.workingDirectory,
			EnvironmentVariables: map[string]string{
				gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentValueConstant,
			},
		},
	})
	if executionError != nil || !executionResult.Succeeded() {
		return ""
	}

	return strings.TrimSpace(executionResult.StandardOutput)
}

func normalizeSemanticVersion(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	if !strings.HasPrefix(trimmed, semanticVersionPrefixConstant) {
		trimmed = semanticVersionPrefixConstant + trimmed
	}
	if !semver.IsValid(trimmed) {
		return ""
	}
	return trimmed
}

type runtimeBuildInfoProvider struct{}

func (runtimeBuildInfoProvider) Read() (*debug.BuildInfo, bool) {
	return debug.ReadBuildInfo()
}
