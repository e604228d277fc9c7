package sequence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/devrun/internal/execshell"
)

const (
	emptyPlanMessageConstant               = "sequence requires at least one step"
	workingDirectoryMissingMessageConstant = "sequence requires a working directory"
	stepExecutableMissingTemplateConstant  = "step %d has no executable"
)

// ErrEmptyPlan indicates that a plan was requested without steps.
var ErrEmptyPlan = errors.New(emptyPlanMessageConstant)

// ErrWorkingDirectoryMissing indicates that a plan was requested without a working directory.
var ErrWorkingDirectoryMissing = errors.New(workingDirectoryMissingMessageConstant)

// Step is one external command execution within a plan.
type Step struct {
	Name    string
	Command execshell.ShellCommand
}

// DisplayName returns the configured name or, when absent, the command line.
func (step Step) DisplayName() string {
	trimmedName := strings.TrimSpace(step.Name)
	if len(trimmedName) > 0 {
		return trimmedName
	}
	return step.Command.CommandLine()
}

// Plan is an ordered list of steps sharing one working directory.
type Plan struct {
	WorkingDirectory string
	Steps            []Step
}

// NewPlan validates the steps and binds each of them to workingDirectory.
func NewPlan(workingDirectory string, steps []Step) (Plan, error) {
	trimmedWorkingDirectory := strings.TrimSpace(workingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return Plan{}, ErrWorkingDirectoryMissing
	}
	if len(steps) == 0 {
		return Plan{}, ErrEmptyPlan
	}

	boundSteps := make([]Step, 0, len(steps))
	for stepIndex, step := range steps {
		if len(strings.TrimSpace(string(step.Command.Name))) == 0 {
			return Plan{}, fmt.Errorf(stepExecutableMissingTemplateConstant, stepIndex+1)
		}
		boundSteps = append(boundSteps, Step{
			Name:    step.Name,
			Command: step.Command.WithWorkingDirectory(trimmedWorkingDirectory),
		})
	}

	return Plan{WorkingDirectory: trimmedWorkingDirectory, Steps: boundSteps}, nil
}
