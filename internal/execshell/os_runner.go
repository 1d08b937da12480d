package execshell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"
)

const (
	posixShellConstant       = "sh"
	posixShellFlagConstant   = "-c"
	windowsShellConstant     = "cmd"
	windowsShellFlagConstant = "/C"
	windowsOperatingSystem   = "windows"
)

// ShellInvocation returns the shell executable and flag used to run a literal command line.
func ShellInvocation(operatingSystem string) (string, string) {
	if operatingSystem == windowsOperatingSystem {
		return windowsShellConstant, windowsShellFlagConstant
	}
	return posixShellConstant, posixShellFlagConstant
}

// OSCommandRunner runs command lines through the operating system shell.
type OSCommandRunner struct {
	Output io.Writer
	Errors io.Writer
	Input  io.Reader
}

// NewOSCommandRunner wires the runner to the process standard streams.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{Output: os.Stdout, Errors: os.Stderr, Input: os.Stdin}
}

// Run blocks until the command exits. A nonzero exit is reported through the result.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	shell, shellFlag := ShellInvocation(runtime.GOOS)
	process := exec.CommandContext(executionContext, shell, shellFlag, command.CommandLine)
	if len(command.Details.WorkingDirectory) > 0 {
		process.Dir = command.Details.WorkingDirectory
	}
	if len(command.Details.EnvironmentVariables) > 0 {
		process.Env = mergeEnvironment(os.Environ(), command.Details.EnvironmentVariables)
	}

	var standardOutput bytes.Buffer
	var standardError bytes.Buffer
	process.Stdout = &standardOutput
	process.Stderr = &standardError
	if command.Details.StreamOutput {
		if runner.Output != nil {
			process.Stdout = io.MultiWriter(runner.Output, &standardOutput)
		}
		if runner.Errors != nil {
			process.Stderr = io.MultiWriter(runner.Errors, &standardError)
		}
		process.Stdin = runner.Input
	}

	startedAt := time.Now()
	runError := process.Run()
	result := ExecutionResult{
		StandardOutput: standardOutput.String(),
		StandardError:  standardError.String(),
		Duration:       time.Since(startedAt),
	}
	if runError == nil {
		return result, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		result.ExitCode = exitError.ExitCode()
		return result, nil
	}
	return ExecutionResult{}, runError
}

func mergeEnvironment(base []string, overrides map[string]string) []string {
	merged := make([]string, 0, len(base)+len(overrides))
	merged = append(merged, base...)
	for key, value := range overrides {
		merged = append(merged, key+"="+value)
	}
	return merged
}
