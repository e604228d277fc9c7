package execshell_test

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/devrun/internal/execshell"
)

const (
	testShellExecutableConstant         = execshell.CommandName("sh")
	testShellScriptFlagConstant         = "-c"
	testMissingExecutableConstant       = execshell.CommandName("devrun-missing-executable-for-tests")
	testEnvironmentVariableNameConstant = "DEVRUN_RUNNER_TEST_VALUE"
	testEnvironmentVariableValue        = "forwarded"
	testStandardInputContentConstant    = "console input"
	testCancellationDelayConstant       = 100 * time.Millisecond
)

func skipWithoutPOSIXShell(testInstance *testing.T) {
	testInstance.Helper()
	if runtime.GOOS == "windows" {
		testInstance.Skip("requires a POSIX shell")
	}
}

func shellCommand(script string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name:    testShellExecutableConstant,
		Details: execshell.CommandDetails{Arguments: []string{testShellScriptFlagConstant, script}},
	}
}

func TestOSCommandRunnerReportsExitCodes(testInstance *testing.T) {
	skipWithoutPOSIXShell(testInstance)

	testCases := []struct {
		name             string
		script           string
		expectedExitCode int
	}{
		{name: "zero_exit", script: "exit 0", expectedExitCode: 0},
		{name: "non_zero_exit", script: "exit 3", expectedExitCode: 3},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			runner := execshell.NewOSCommandRunnerWithStreams(execshell.ConsoleStreams{})

			executionResult, runError := runner.Run(context.Background(), shellCommand(testCase.script))

			require.NoError(testInstance, runError)
			require.Equal(testInstance, testCase.expectedExitCode, executionResult.ExitCode)
		})
	}
}

func TestOSCommandRunnerReportsLaunchFailure(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunnerWithStreams(execshell.ConsoleStreams{})

	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: testMissingExecutableConstant})

	require.Error(testInstance, runError)
	require.Contains(testInstance, runError.Error(), string(testMissingExecutableConstant))
}

func TestOSCommandRunnerStreamsConsole(testInstance *testing.T) {
	skipWithoutPOSIXShell(testInstance)

	var standardOutput bytes.Buffer
	var standardError bytes.Buffer
	runner := execshell.NewOSCommandRunnerWithStreams(execshell.ConsoleStreams{
		Input:  strings.NewReader(testStandardInputContentConstant),
		Output: &standardOutput,
		Errors: &standardError,
	})

	executionResult, runError := runner.Run(context.Background(), shellCommand("cat; echo problem 1>&2"))

	require.NoError(testInstance, runError)
	require.Equal(testInstance, 0, executionResult.ExitCode)
	require.Equal(testInstance, testStandardInputContentConstant, standardOutput.String())
	require.Equal(testInstance, "problem\n", standardError.String())
}

func TestOSCommandRunnerHonorsWorkingDirectoryAndEnvironment(testInstance *testing.T) {
	skipWithoutPOSIXShell(testInstance)

	workingDirectory := testInstance.TempDir()
	resolvedWorkingDirectory, resolveError := filepath.EvalSymlinks(workingDirectory)
	require.NoError(testInstance, resolveError)

	var standardOutput bytes.Buffer
	runner := execshell.NewOSCommandRunnerWithStreams(execshell.ConsoleStreams{Output: &standardOutput})

	command := shellCommand("pwd -P; printf %s \"$" + testEnvironmentVariableNameConstant + "\"")
	command.Details.WorkingDirectory = workingDirectory
	command.Details.EnvironmentVariables = map[string]string{testEnvironmentVariableNameConstant: testEnvironmentVariableValue}

	_, runError := runner.Run(context.Background(), command)
	require.NoError(testInstance, runError)

	outputLines := strings.Split(standardOutput.String(), "\n")
	require.Len(testInstance, outputLines, 2)
	require.Equal(testInstance, resolvedWorkingDirectory, outputLines[0])
	require.Equal(testInstance, testEnvironmentVariableValue, outputLines[1])
}

func TestOSCommandRunnerStopsOnCancellation(testInstance *testing.T) {
	skipWithoutPOSIXShell(testInstance)

	executionContext, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(testCancellationDelayConstant, cancel)

	runner := execshell.NewOSCommandRunnerWithStreams(execshell.ConsoleStreams{})
	_, runError := runner.Run(executionContext, shellCommand("exec sleep 30"))

	require.ErrorIs(testInstance, runError, context.Canceled)
}
