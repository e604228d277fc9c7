package utils_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/devrun/internal/utils"
)

const (
	testConfigurationDirectoryConstant = "/etc/devrun"
	testStepsFileNameConstant          = "steps.yaml"
	testAbsoluteStepsPathConstant      = "/srv/steps.toml"
)

func TestCommandContextAccessorConfigurationFilePath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, available := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, available)

	emptyContext := accessor.WithConfigurationFilePath(context.Background(), "")
	_, available = accessor.ConfigurationFilePath(emptyContext)
	require.False(testInstance, available)

	configurationFilePath := filepath.Join(testConfigurationDirectoryConstant, testConfigFileNameConstant)
	populatedContext := accessor.WithConfigurationFilePath(context.Background(), configurationFilePath)
	storedPath, available := accessor.ConfigurationFilePath(populatedContext)
	require.True(testInstance, available)
	require.Equal(testInstance, configurationFilePath, storedPath)
}

func TestCommandContextAccessorResolveConfigurationRelativePath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()
	populatedContext := accessor.WithConfigurationFilePath(context.Background(), filepath.Join(testConfigurationDirectoryConstant, testConfigFileNameConstant))

	testCases := []struct {
		name          string
		context       context.Context
		candidatePath string
		expectedPath  string
	}{
		{
			name:          "relative_to_configuration_directory",
			context:       populatedContext,
			candidatePath: testStepsFileNameConstant,
			expectedPath:  filepath.Join(testConfigurationDirectoryConstant, testStepsFileNameConstant),
		},
		{
			name:          "absolute_path_unchanged",
			context:       populatedContext,
			candidatePath: testAbsoluteStepsPathConstant,
			expectedPath:  testAbsoluteStepsPathConstant,
		},
		{
			name:          "no_configuration_file",
			context:       context.Background(),
			candidatePath: testStepsFileNameConstant,
			expectedPath:  testStepsFileNameConstant,
		},
		{
			name:          "empty_path",
			context:       populatedContext,
			candidatePath: "",
			expectedPath:  "",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, accessor.ResolveConfigurationRelativePath(testCase.context, testCase.candidatePath))
		})
	}
}
