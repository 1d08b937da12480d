package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/tk/internal/dispatch"
	"github.com/tyemirov/tk/internal/execshell"
	"github.com/tyemirov/tk/internal/managers"
)

const (
	testConfigurationFileNameConstant       = "config.yaml"
	testConfigurationSearchPathEnvironment  = "TK_CONFIG_SEARCH_PATH"
	testMarkerPermissionConstant            = 0o600
	testGoModuleContentConstant             = "module example.com/widget\n\ngo 1.22\n"
	testOverrideConfigurationContent        = "common:\n  log_level: error\nmanagers:\n  npm:\n    commands:\n      build: npm run bundle\n  cargo:\n    disabled: true\n"
	testUnknownManagerConfigurationContent  = "managers:\n  ant:\n    disabled: true\n"
	testVerboseConfigurationContent         = "common:\n  verbose: true\n"
	testExistingConfigurationContent        = "common:\n  log_level: error\n"
	testConfigurationExistsMessageFragment  = "already exists"
	testResolvedVersionConstant             = "v1.2.3"
	testExpectedVersionOutputConstant       = "tk version: v1.2.3\n"
	testStartConflictMessageConstant        = "[tk] failed to run start because of multiple start-capable managers: npm,cargo"
	testNoRunnableManagersMessageConstant   = "[tk] no runnable manager detected"
	testBroadcastSummaryFragmentConstant    = "Summary: total.managers=2 succeeded=1 failed=1 skipped=0"
	testBroadcastFailureMessageConstant     = "build failed for cargo (exit code 101)"
	testNotInvokableMessageFragmentConstant = "[tk] swift command not available for Package.swift"
)

type stubExecutableResolver struct {
	available map[string]bool
}

func (resolver stubExecutableResolver) LookPath(executable string) (string, error) {
	if resolver.available[executable] {
		return "/usr/bin/" + executable, nil
	}
	return "", errors.New("executable not found")
}

type recordingCommandRunner struct {
	commands  []execshell.ShellCommand
	exitCodes map[string]int
}

func (runner *recordingCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.commands = append(runner.commands, command)
	return execshell.ExecutionResult{ExitCode: runner.exitCodes[command.CommandLine]}, nil
}

func (runner *recordingCommandRunner) commandLines() []string {
	lines := make([]string, 0, len(runner.commands))
	for _, command := range runner.commands {
		lines = append(lines, command.CommandLine)
	}
	return lines
}

type applicationHarness struct {
	application *Application
	runner      *recordingCommandRunner
	output      *bytes.Buffer
	errors      *bytes.Buffer
}

func newApplicationHarness(testInstance *testing.T, availableExecutables ...string) applicationHarness {
	testInstance.Helper()
	testInstance.Setenv(testConfigurationSearchPathEnvironment, testInstance.TempDir())

	available := make(map[string]bool, len(availableExecutables))
	for _, executable := range availableExecutables {
		available[executable] = true
	}

	runner := &recordingCommandRunner{exitCodes: map[string]int{}}
	application := NewApplication()
	application.probeDependencies = managers.ProbeDependencies{ExecutableResolver: stubExecutableResolver{available: available}}
	application.commandRunner = runner

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(errorBuffer)

	return applicationHarness{application: application, runner: runner, output: outputBuffer, errors: errorBuffer}
}

func writeMarkers(testInstance *testing.T, directory string, markers ...string) {
	testInstance.Helper()
	for _, marker := range markers {
		content := []byte("{}")
		if marker == "go.mod" {
			content = []byte(testGoModuleContentConstant)
		}
		require.NoError(testInstance, os.WriteFile(filepath.Join(directory, marker), content, testMarkerPermissionConstant))
	}
}

func writeConfigurationFile(testInstance *testing.T, configurationPath string, configurationContent string) {
	testInstance.Helper()
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), testMarkerPermissionConstant))
}

func TestParseDispatchArguments(testInstance *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		dashIndex       int
		expectedRequest dispatch.Request
		expectedError   string
	}{
		{
			name:            "VerbOnly",
			arguments:       []string{"build"},
			dashIndex:       -1,
			expectedRequest: dispatch.Request{Verb: managers.VerbBuild},
		},
		{
			name:            "ManagerAndVerb",
			arguments:       []string{"npm", "test"},
			dashIndex:       -1,
			expectedRequest: dispatch.Request{Manager: managers.IdentifierNPM, Verb: managers.VerbTest},
		},
		{
			name:            "ManagerAlias",
			arguments:       []string{"mvn", "clean"},
			dashIndex:       -1,
			expectedRequest: dispatch.Request{Manager: managers.IdentifierMaven, Verb: managers.VerbClean},
		},
		{
			name:            "TrailingPositionalArguments",
			arguments:       []string{"build", "release"},
			dashIndex:       -1,
			expectedRequest: dispatch.Request{Verb: managers.VerbBuild, ExtraArguments: []string{"release"}},
		},
		{
			name:            "ArgumentsAfterDash",
			arguments:       []string{"npm", "test", "extra", "--watch", "build"},
			dashIndex:       3,
			expectedRequest: dispatch.Request{Manager: managers.IdentifierNPM, Verb: managers.VerbTest, ExtraArguments: []string{"extra", "--watch", "build"}},
		},
		{
			name:          "UnknownToken",
			arguments:     []string{"deploy"},
			dashIndex:     -1,
			expectedError: `unknown verb or manager "deploy"`,
		},
		{
			name:          "ManagerWithoutVerb",
			arguments:     []string{"cargo"},
			dashIndex:     -1,
			expectedError: "missing verb for manager cargo",
		},
		{
			name:          "ManagerWithUnknownVerb",
			arguments:     []string{"cargo", "deploy"},
			dashIndex:     -1,
			expectedError: `unknown verb "deploy"`,
		},
		{
			name:          "VerbOnlyAfterDash",
			arguments:     []string{"build"},
			dashIndex:     0,
			expectedError: errMissingVerb.Error(),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(t *testing.T) {
			request, parseError := parseDispatchArguments(testCase.arguments, testCase.dashIndex)
			if len(testCase.expectedError) > 0 {
				require.EqualError(t, parseError, testCase.expectedError)
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expectedRequest, request)
		})
	}
}

func TestNormalizeInitializationScopeArguments(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{name: "Empty", arguments: nil, expected: []string{}},
		{name: "BareFlag", arguments: []string{"--init"}, expected: []string{"--init"}},
		{name: "ExplicitScope", arguments: []string{"--init", "user"}, expected: []string{"--init=user"}},
		{name: "ExplicitScopeBeforeForce", arguments: []string{"--init", "local", "--force"}, expected: []string{"--init=local", "--force"}},
		{name: "VerbIsNotAScope", arguments: []string{"--init", "build"}, expected: []string{"--init", "build"}},
		{name: "AfterSeparatorUntouched", arguments: []string{"npm", "test", "--", "--init"}, expected: []string{"npm", "test", "--", "--init"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, normalizeInitializationScopeArguments(testCase.arguments))
		})
	}
}

func TestApplicationBroadcastsVerbAcrossDetectedManagers(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance, "npm", "cargo")
	workingDirectory := testInstance.TempDir()
	writeMarkers(testInstance, workingDirectory, "package.json", "Cargo.toml")
	harness.runner.exitCodes["cargo build --release"] = 101

	executionError := harness.application.executeArguments([]string{"-C", workingDirectory, "build", "--", "--release"})
	require.EqualError(testInstance, executionError, testBroadcastFailureMessageConstant)

	require.Equal(testInstance, []string{"npm run build --release", "cargo build --release"}, harness.runner.commandLines())
	for _, command := range harness.runner.commands {
		require.Equal(testInstance, workingDirectory, command.Details.WorkingDirectory)
		require.False(testInstance, command.Details.StreamOutput)
	}
	require.Contains(testInstance, harness.errors.String(), testBroadcastSummaryFragmentConstant)
}

func TestApplicationRunsExplicitManagerOnly(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance, "npm", "cargo")
	workingDirectory := testInstance.TempDir()
	writeMarkers(testInstance, workingDirectory, "package.json", "Cargo.toml")

	executionError := harness.application.executeArguments([]string{"--directory", workingDirectory, "--verbose", "npm", "install"})
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{"npm install"}, harness.runner.commandLines())
	require.True(testInstance, harness.runner.commands[0].Details.StreamOutput)
	require.Contains(testInstance, harness.errors.String(), "[tk] execute install from npm")
	require.NotContains(testInstance, harness.errors.String(), "Summary:")
}

func TestApplicationNeutralOutcomesSucceed(testInstance *testing.T) {
	testCases := []struct {
		name                string
		markers             []string
		executables         []string
		arguments           []string
		expectedMessage     string
		expectedCommandLine []string
	}{
		{
			name:            "StartConflict",
			markers:         []string{"package.json", "Cargo.toml"},
			executables:     []string{"npm", "cargo"},
			arguments:       []string{"start"},
			expectedMessage: testStartConflictMessageConstant,
		},
		{
			name:            "NoRunnableManagers",
			arguments:       []string{"test"},
			expectedMessage: testNoRunnableManagersMessageConstant,
		},
		{
			name:            "NotInvokableManager",
			markers:         []string{"Package.swift"},
			arguments:       []string{"build"},
			expectedMessage: testNotInvokableMessageFragmentConstant,
		},
		{
			name:            "ExplicitManagerMissing",
			markers:         []string{"package.json"},
			executables:     []string{"npm"},
			arguments:       []string{"cargo", "build"},
			expectedMessage: "[tk] cargo not available",
		},
		{
			name:        "InitWithoutManager",
			markers:     []string{"package.json"},
			executables: []string{"npm"},
			arguments:   []string{"init"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(t *testing.T) {
			harness := newApplicationHarness(t, testCase.executables...)
			workingDirectory := t.TempDir()
			writeMarkers(t, workingDirectory, testCase.markers...)

			executionError := harness.application.executeArguments(append([]string{"-C", workingDirectory}, testCase.arguments...))
			require.NoError(t, executionError)
			require.Empty(t, harness.runner.commands)
			if len(testCase.expectedMessage) > 0 {
				require.Contains(t, harness.errors.String(), testCase.expectedMessage)
			} else {
				require.Empty(t, strings.TrimSpace(harness.errors.String()))
			}
		})
	}
}

func TestApplicationAppliesManagerOverrides(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance, "npm", "cargo")
	workingDirectory := testInstance.TempDir()
	writeMarkers(testInstance, workingDirectory, "package.json", "Cargo.toml")

	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	writeConfigurationFile(testInstance, configurationPath, testOverrideConfigurationContent)

	executionError := harness.application.executeArguments([]string{"--config", configurationPath, "-C", workingDirectory, "build"})
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{"npm run bundle"}, harness.runner.commandLines())
	require.Equal(testInstance, configurationPath, harness.application.configurationMetadata.ConfigFileUsed)
}

func TestApplicationRejectsUnknownManagerOverride(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance, "npm")
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	writeConfigurationFile(testInstance, configurationPath, testUnknownManagerConfigurationContent)

	executionError := harness.application.executeArguments([]string{"--config", configurationPath, "-C", testInstance.TempDir(), "build"})
	require.ErrorContains(testInstance, executionError, `unknown manager "ant"`)
}

func TestApplicationVerboseFromConfiguration(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance, "npm")
	workingDirectory := testInstance.TempDir()
	writeMarkers(testInstance, workingDirectory, "package.json")

	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	writeConfigurationFile(testInstance, configurationPath, testVerboseConfigurationContent)

	require.NoError(testInstance, harness.application.executeArguments([]string{"--config", configurationPath, "-C", workingDirectory, "test"}))
	require.Len(testInstance, harness.runner.commands, 1)
	require.True(testInstance, harness.runner.commands[0].Details.StreamOutput)

	harness.runner.commands = nil
	require.NoError(testInstance, harness.application.executeArguments([]string{"--config", configurationPath, "-C", workingDirectory, "--verbose=false", "test"}))
	require.Len(testInstance, harness.runner.commands, 1)
	require.False(testInstance, harness.runner.commands[0].Details.StreamOutput)
}

func TestApplicationRejectsUnknownVerb(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)
	executionError := harness.application.executeArguments([]string{"deploy"})
	require.EqualError(testInstance, executionError, `unknown verb or manager "deploy"`)
}

func TestApplicationShowsHelpWithoutArguments(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)
	require.NoError(testInstance, harness.application.executeArguments(nil))
	require.Contains(testInstance, harness.output.String(), "Verbs: init, install, compile, build, start, test, deps, doc, clean, outdated, update")
	require.Empty(testInstance, harness.runner.commands)
}

func TestManagersCommandFormats(testInstance *testing.T) {
	testCases := []struct {
		name              string
		format            string
		expectedFragments []string
	}{
		{
			name:              "Table",
			format:            "table",
			expectedFragments: []string{"MANAGER", "INVOKABLE", "example.com/widget", "build.gradle | build.gradle.kts"},
		},
		{
			name:              "YAML",
			format:            "yaml",
			expectedFragments: []string{"- manager: go", "project: example.com/widget", "install_reference: https://", "detected: true"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(t *testing.T) {
			harness := newApplicationHarness(t, "go")
			workingDirectory := t.TempDir()
			writeMarkers(t, workingDirectory, "go.mod")

			require.NoError(t, harness.application.executeArguments([]string{"-C", workingDirectory, "managers", "--format", testCase.format}))
			for _, fragment := range testCase.expectedFragments {
				require.Contains(t, harness.output.String(), fragment)
			}
		})
	}
}

func TestManagersCommandRejectsUnknownFormat(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)
	executionError := harness.application.executeArguments([]string{"-C", testInstance.TempDir(), "managers", "--format", "xml"})
	require.EqualError(testInstance, executionError, `unsupported output format "xml"`)
}

func TestVersionCommandPrintsResolvedVersion(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)
	harness.application.versionResolver = func(context.Context) string { return testResolvedVersionConstant }

	require.NoError(testInstance, harness.application.executeArguments([]string{"version"}))
	require.Equal(testInstance, testExpectedVersionOutputConstant, harness.output.String())
}

func TestApplicationConfigurationSearchPathOverride(testInstance *testing.T) {
	configurationDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(configurationDirectory, testConfigurationFileNameConstant)
	writeConfigurationFile(testInstance, configurationPath, testOverrideConfigurationContent)
	testInstance.Setenv(testConfigurationSearchPathEnvironment, configurationDirectory)

	application := NewApplication()
	application.rootCommand.SetOut(&bytes.Buffer{})
	application.rootCommand.SetErr(&bytes.Buffer{})
	require.NoError(testInstance, application.executeArguments([]string{"-C", testInstance.TempDir(), managersCommandUseNameConstant}))

	resolvedExpected, expectedError := filepath.EvalSymlinks(configurationPath)
	require.NoError(testInstance, expectedError)
	resolvedActual, actualError := filepath.EvalSymlinks(application.configurationMetadata.ConfigFileUsed)
	require.NoError(testInstance, actualError)
	require.Equal(testInstance, resolvedExpected, resolvedActual)
	require.Equal(testInstance, "npm run bundle", application.configuration.Managers["npm"].Commands["build"])
	require.True(testInstance, application.configuration.Managers["cargo"].Disabled)
}

func TestApplicationEmbeddedDefaultsApplied(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)
	require.NoError(testInstance, harness.application.executeArguments([]string{"-C", testInstance.TempDir(), managersCommandUseNameConstant}))

	configuration := harness.application.configuration
	require.Equal(testInstance, "error", configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", configuration.Common.LogFormat)
	require.False(testInstance, configuration.Common.Verbose)
	require.Empty(testInstance, configuration.Managers)
}

func TestApplicationConfigurationInitialization(testInstance *testing.T) {
	embeddedConfigurationContent, _ := EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, embeddedConfigurationContent)

	testCases := []struct {
		name            string
		arguments       []string
		existingContent string
		expectError     bool
	}{
		{name: "CreatesLocalConfiguration", arguments: []string{"--init"}},
		{name: "ForceRequired", arguments: []string{"--init"}, existingContent: testExistingConfigurationContent, expectError: true},
		{name: "ForceEnabled", arguments: []string{"--init", "--force"}, existingContent: testExistingConfigurationContent},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(t *testing.T) {
			workingDirectory := t.TempDir()
			originalWorkingDirectory, workingDirectoryError := os.Getwd()
			require.NoError(t, workingDirectoryError)
			require.NoError(t, os.Chdir(workingDirectory))
			t.Cleanup(func() {
				require.NoError(t, os.Chdir(originalWorkingDirectory))
			})

			configurationPath := filepath.Join(workingDirectory, testConfigurationFileNameConstant)
			if len(testCase.existingContent) > 0 {
				writeConfigurationFile(t, configurationPath, testCase.existingContent)
			}

			harness := newApplicationHarness(t)
			executionError := harness.application.executeArguments(testCase.arguments)

			fileContent, readError := os.ReadFile(configurationPath)
			require.NoError(t, readError)
			if testCase.expectError {
				require.ErrorContains(t, executionError, testConfigurationExistsMessageFragment)
				require.Equal(t, testCase.existingContent, string(fileContent))
				return
			}
			require.NoError(t, executionError)
			require.Equal(t, embeddedConfigurationContent, fileContent)
			require.Empty(t, harness.runner.commands)
		})
	}
}

func TestApplicationConfigurationInitializationHonorsDirectoryFlag(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	harness := newApplicationHarness(testInstance)

	require.NoError(testInstance, harness.application.executeArguments([]string{"-C", targetDirectory, "--init", "local"}))

	fileContent, readError := os.ReadFile(filepath.Join(targetDirectory, testConfigurationFileNameConstant))
	require.NoError(testInstance, readError)
	embeddedConfigurationContent, _ := EmbeddedDefaultConfiguration()
	require.Equal(testInstance, embeddedConfigurationContent, fileContent)
}
