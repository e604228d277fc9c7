package sequence_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/devrun/internal/execshell"
	"github.com/temirov/devrun/internal/sequence"
)

const (
	testYAMLDefinitionContent = `executable: bun
working_directory: frontend
steps:
  - name: install
    args: [install]
  - args: [run, sources]
  - command: npx
    args: [vite, --host]
    env:
      NODE_ENV: development
`
	testJSONDefinitionContent = `{"steps": [{"command": "make", "args": ["build"]}]}`
	testTOMLDefinitionContent = `executable = "bun"

[[steps]]
name = "install"
args = ["install"]

[[steps]]
args = ["run", "dev"]
`
)

func writeDefinitionFile(testInstance *testing.T, fileName string, content string) string {
	testInstance.Helper()
	definitionPath := filepath.Join(testInstance.TempDir(), fileName)
	require.NoError(testInstance, os.WriteFile(definitionPath, []byte(content), 0o600))
	return definitionPath
}

func TestLoadDefinitionFormats(testInstance *testing.T) {
	testCases := []struct {
		name               string
		fileName           string
		content            string
		expectedExecutable string
		expectedStepCount  int
		expectedFirstArgs  []string
	}{
		{name: "yaml", fileName: "steps.yaml", content: testYAMLDefinitionContent, expectedExecutable: "bun", expectedStepCount: 3, expectedFirstArgs: []string{"install"}},
		{name: "json", fileName: "steps.json", content: testJSONDefinitionContent, expectedStepCount: 1, expectedFirstArgs: []string{"build"}},
		{name: "toml", fileName: "steps.TOML", content: testTOMLDefinitionContent, expectedExecutable: "bun", expectedStepCount: 2, expectedFirstArgs: []string{"install"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			definition, loadError := sequence.LoadDefinition(writeDefinitionFile(testInstance, testCase.fileName, testCase.content))

			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedExecutable, definition.Executable)
			require.Len(testInstance, definition.Steps, testCase.expectedStepCount)
			require.Equal(testInstance, testCase.expectedFirstArgs, definition.Steps[0].Arguments)
		})
	}
}

func TestLoadDefinitionErrors(testInstance *testing.T) {
	_, emptyPathError := sequence.LoadDefinition(" ")
	require.ErrorIs(testInstance, emptyPathError, sequence.ErrDefinitionPathRequired)

	_, missingFileError := sequence.LoadDefinition(filepath.Join(testInstance.TempDir(), "missing.yaml"))
	require.ErrorIs(testInstance, missingFileError, os.ErrNotExist)

	_, noStepsError := sequence.LoadDefinition(writeDefinitionFile(testInstance, "empty.yaml", "executable: bun\n"))
	require.ErrorIs(testInstance, noStepsError, sequence.ErrDefinitionWithoutSteps)

	_, malformedError := sequence.LoadDefinition(writeDefinitionFile(testInstance, "broken.toml", "steps = [\n"))
	require.Error(testInstance, malformedError)
	require.Contains(testInstance, malformedError.Error(), "failed to parse step definition")
}

func TestBuildStepsAppliesDefaultExecutable(testInstance *testing.T) {
	definition, loadError := sequence.LoadDefinition(writeDefinitionFile(testInstance, "steps.yml", testYAMLDefinitionContent))
	require.NoError(testInstance, loadError)

	steps, buildError := sequence.BuildSteps(definition.Steps, definition.Executable)
	require.NoError(testInstance, buildError)
	require.Len(testInstance, steps, 3)

	require.Equal(testInstance, "install", steps[0].DisplayName())
	require.Equal(testInstance, execshell.CommandName("bun"), steps[1].Command.Name)
	require.Equal(testInstance, "bun run sources", steps[1].DisplayName())
	require.Equal(testInstance, execshell.CommandName("npx"), steps[2].Command.Name)
	require.Equal(testInstance, map[string]string{"NODE_ENV": "development"}, steps[2].Command.Details.EnvironmentVariables)
}

func TestBuildStepsRequiresExecutable(testInstance *testing.T) {
	_, buildError := sequence.BuildSteps([]sequence.StepDefinition{{Arguments: []string{"install"}}}, "")

	require.EqualError(testInstance, buildError, "step 1 has no command and no default executable is configured")
}
