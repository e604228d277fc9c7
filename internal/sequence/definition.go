package sequence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/temirov/devrun/internal/execshell"
)

const (
	definitionPathRequiredMessageConstant = "step definition path must be provided"
	definitionReadErrorTemplateConstant   = "failed to read step definition: %w"
	definitionParseErrorTemplateConstant  = "failed to parse step definition %s: %w"
	definitionEmptyStepsMessageConstant   = "step definition must define at least one step"
	stepCommandMissingTemplateConstant    = "step %d has no command and no default executable is configured"
	tomlFileExtensionConstant             = ".toml"
)

// ErrDefinitionPathRequired indicates that LoadDefinition received an empty path.
var ErrDefinitionPathRequired = errors.New(definitionPathRequiredMessageConstant)

// ErrDefinitionWithoutSteps indicates that a definition file declares no steps.
var ErrDefinitionWithoutSteps = errors.New(definitionEmptyStepsMessageConstant)

// StepDefinition declares one step. Command falls back to the run's default executable.
type StepDefinition struct {
	Name        string            `mapstructure:"name" yaml:"name" toml:"name"`
	Command     string            `mapstructure:"command" yaml:"command" toml:"command"`
	Arguments   []string          `mapstructure:"args" yaml:"args" toml:"args"`
	Environment map[string]string `mapstructure:"env" yaml:"env" toml:"env"`
}

// Definition is the content of a standalone step file.
type Definition struct {
	Executable       string           `yaml:"executable" toml:"executable"`
	WorkingDirectory string           `yaml:"working_directory" toml:"working_directory"`
	Steps            []StepDefinition `yaml:"steps" toml:"steps"`
}

// LoadDefinition reads a step file. Files ending in .toml are decoded as TOML;
// everything else is decoded as YAML, which also accepts JSON.
func LoadDefinition(filePath string) (Definition, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Definition{}, ErrDefinitionPathRequired
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Definition{}, fmt.Errorf(definitionReadErrorTemplateConstant, readError)
	}

	var definition Definition
	var parseError error
	if strings.EqualFold(filepath.Ext(trimmedPath), tomlFileExtensionConstant) {
		parseError = toml.Unmarshal(contentBytes, &definition)
	} else {
		parseError = yaml.Unmarshal(contentBytes, &definition)
	}
	if parseError != nil {
		return Definition{}, fmt.Errorf(definitionParseErrorTemplateConstant, trimmedPath, parseError)
	}

	if len(definition.Steps) == 0 {
		return Definition{}, ErrDefinitionWithoutSteps
	}

	return definition, nil
}

// BuildSteps converts definitions into steps, using defaultExecutable for steps without a command.
func BuildSteps(definitions []StepDefinition, defaultExecutable string) ([]Step, error) {
	trimmedDefaultExecutable := strings.TrimSpace(defaultExecutable)
	steps := make([]Step, 0, len(definitions))
	for definitionIndex, definition := range definitions {
		executable := strings.TrimSpace(definition.Command)
		if len(executable) == 0 {
			executable = trimmedDefaultExecutable
		}
		if len(executable) == 0 {
			return nil, fmt.Errorf(stepCommandMissingTemplateConstant, definitionIndex+1)
		}

		command := execshell.ShellCommand{
			Name:    execshell.CommandName(executable),
			Details: execshell.CommandDetails{Arguments: append([]string{}, definition.Arguments...)},
		}
		if len(definition.Environment) > 0 {
			command.Details.EnvironmentVariables = make(map[string]string, len(definition.Environment))
			for environmentKey, environmentValue := range definition.Environment {
				command.Details.EnvironmentVariables[environmentKey] = environmentValue
			}
		}

		steps = append(steps, Step{Name: strings.TrimSpace(definition.Name), Command: command})
	}
	return steps, nil
}
