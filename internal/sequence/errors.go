package sequence

import (
	"errors"
	"fmt"
)

const (
	executorNotConfiguredMessageConstant = "sequence runner requires a step executor"
	stepFailedTemplateConstant           = "step %d (%s): %v"
)

// ErrExecutorNotConfigured indicates that a Runner was constructed without a step executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// StepFailedError identifies the step that stopped a run.
type StepFailedError struct {
	StepIndex int
	StepName  string
	Cause     error
}

// Error names the step by its one-based position.
func (failure StepFailedError) Error() string {
	return fmt.Sprintf(stepFailedTemplateConstant, failure.StepIndex+1, failure.StepName, failure.Cause)
}

// Unwrap exposes the step's own failure.
func (failure StepFailedError) Unwrap() error {
	return failure.Cause
}
