package run

import (
	"strings"
	"time"

	"github.com/temirov/devrun/internal/sequence"
	"github.com/temirov/devrun/internal/workspace"
)

const (
	defaultWorkingDirectoryConstant = "app"
	defaultExecutableConstant       = "bun"
	configurationKeySeparator       = "."
	workingDirectoryKeyConstant     = "working_directory"
	anchorKeyConstant               = "anchor"
	executableKeyConstant           = "executable"
	stepsFileKeyConstant            = "steps_file"
	stepTimeoutKeyConstant          = "step_timeout"
	suppressFailureStatusKey        = "suppress_failure_status"
	dryRunKeyConstant               = "dry_run"
)

// CommandConfiguration captures configuration values for the run command.
type CommandConfiguration struct {
	WorkingDirectory      string                    `mapstructure:"working_directory"`
	Anchor                string                    `mapstructure:"anchor"`
	Executable            string                    `mapstructure:"executable"`
	StepsFile             string                    `mapstructure:"steps_file"`
	Steps                 []sequence.StepDefinition `mapstructure:"steps"`
	StepTimeout           time.Duration             `mapstructure:"step_timeout"`
	SuppressFailureStatus bool                      `mapstructure:"suppress_failure_status"`
	DryRun                bool                      `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides the baseline used when no configuration is loaded.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		WorkingDirectory: defaultWorkingDirectoryConstant,
		Anchor:           string(workspace.AnchorRepository),
		Executable:       defaultExecutableConstant,
		Steps: []sequence.StepDefinition{
			{Arguments: []string{"install"}},
			{Arguments: []string{"run", "sources"}},
			{Arguments: []string{"run", "dev"}},
		},
	}
}

// DefaultConfigurationValues returns scalar defaults keyed under prefix for the configuration loader.
// Steps are left to the embedded configuration so that a user file replaces the list wholesale.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefixedKey(prefix, workingDirectoryKeyConstant): defaults.WorkingDirectory,
		prefixedKey(prefix, anchorKeyConstant):           defaults.Anchor,
		prefixedKey(prefix, executableKeyConstant):       defaults.Executable,
		prefixedKey(prefix, stepsFileKeyConstant):        defaults.StepsFile,
		prefixedKey(prefix, stepTimeoutKeyConstant):      defaults.StepTimeout,
		prefixedKey(prefix, suppressFailureStatusKey):    defaults.SuppressFailureStatus,
		prefixedKey(prefix, dryRunKeyConstant):           defaults.DryRun,
	}
}

// sanitize trims configuration values and restores defaults for blank required fields.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.WorkingDirectory = strings.TrimSpace(configuration.WorkingDirectory)
	if len(sanitized.WorkingDirectory) == 0 {
		sanitized.WorkingDirectory = defaults.WorkingDirectory
	}
	sanitized.Anchor = strings.TrimSpace(configuration.Anchor)
	sanitized.Executable = strings.TrimSpace(configuration.Executable)
	sanitized.StepsFile = strings.TrimSpace(configuration.StepsFile)
	if sanitized.StepTimeout < 0 {
		sanitized.StepTimeout = 0
	}
	sanitized.Steps = append([]sequence.StepDefinition{}, configuration.Steps...)

	return sanitized
}

func prefixedKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparator + key
}
