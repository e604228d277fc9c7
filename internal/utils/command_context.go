package utils

import (
	"context"
	"path/filepath"
)

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the configuration file the run was loaded from.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	if !configurationFilePathAvailable || len(configurationFilePath) == 0 {
		return "", false
	}
	return configurationFilePath, true
}

// ResolveConfigurationRelativePath joins a relative path onto the configuration file's directory.
// Absolute paths, and any path when no configuration file was loaded, are returned unchanged.
func (accessor CommandContextAccessor) ResolveConfigurationRelativePath(executionContext context.Context, candidatePath string) string {
	if len(candidatePath) == 0 || filepath.IsAbs(candidatePath) {
		return candidatePath
	}
	configurationFilePath, available := accessor.ConfigurationFilePath(executionContext)
	if !available {
		return candidatePath
	}
	return filepath.Join(filepath.Dir(configurationFilePath), candidatePath)
}
