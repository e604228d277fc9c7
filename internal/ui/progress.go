package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/temirov/devrun/internal/sequence"
)

const (
	navigatingTemplateConstant     = "Navigating to %s..."
	stepRunningTemplateConstant    = "Running %s..."
	namedStepLabelTemplateConstant = "%s (%s)"
	runSucceededMessageConstant    = "All commands executed successfully."
	runFailedTemplateConstant      = "An error occurred: %v"
	planHeaderTemplateConstant     = "Working directory: %s"
	planStepTemplateConstant       = "%d. %s"
	lineTemplateConstant           = "%s\n"
	successColorConstant           = "10"
	failureColorConstant           = "9"
	accentColorConstant            = "12"
)

// ProgressPrinter implements sequence.ProgressObserver by writing one line per event.
type ProgressPrinter struct {
	output       io.Writer
	errors       io.Writer
	plainStyle   lipgloss.Style
	accentStyle  lipgloss.Style
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
}

// NewProgressPrinter writes progress to output and the failure summary to errorOutput.
// Styling follows each writer's terminal capabilities, so redirected output stays plain.
func NewProgressPrinter(output io.Writer, errorOutput io.Writer) *ProgressPrinter {
	if output == nil {
		output = io.Discard
	}
	if errorOutput == nil {
		errorOutput = output
	}
	outputRenderer := lipgloss.NewRenderer(terminalWriter(output))
	errorRenderer := lipgloss.NewRenderer(terminalWriter(errorOutput))
	return &ProgressPrinter{
		output:       output,
		errors:       errorOutput,
		plainStyle:   outputRenderer.NewStyle(),
		accentStyle:  outputRenderer.NewStyle().Foreground(lipgloss.Color(accentColorConstant)),
		successStyle: outputRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color(successColorConstant)),
		failureStyle: errorRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color(failureColorConstant)),
	}
}

// RunStarted announces the working directory.
func (printer *ProgressPrinter) RunStarted(plan sequence.Plan) {
	printer.writeLine(printer.output, printer.accentStyle, fmt.Sprintf(navigatingTemplateConstant, plan.WorkingDirectory))
}

// StepStarted announces the command about to run.
func (printer *ProgressPrinter) StepStarted(stepIndex int, step sequence.Step) {
	printer.writeLine(printer.output, printer.accentStyle, fmt.Sprintf(stepRunningTemplateConstant, stepLabel(step)))
}

// StepSucceeded is silent; the child's own output already shows progress.
func (printer *ProgressPrinter) StepSucceeded(int, sequence.Step) {}

// RunFinished writes the single summary line.
func (printer *ProgressPrinter) RunFinished(report sequence.Report) {
	switch report.State {
	case sequence.StateCompleted:
		printer.writeLine(printer.output, printer.successStyle, runSucceededMessageConstant)
	case sequence.StateFailed:
		printer.ReportFailure(report.Failure)
	}
}

// ReportFailure writes the failure summary line for errors raised before or during the run.
func (printer *ProgressPrinter) ReportFailure(failure error) {
	printer.writeLine(printer.errors, printer.failureStyle, fmt.Sprintf(runFailedTemplateConstant, failure))
}

// PrintPlan lists the working directory and every step without running anything.
func (printer *ProgressPrinter) PrintPlan(plan sequence.Plan) {
	printer.writeLine(printer.output, printer.accentStyle, fmt.Sprintf(planHeaderTemplateConstant, plan.WorkingDirectory))
	for stepIndex, step := range plan.Steps {
		printer.writeLine(printer.output, printer.plainStyle, fmt.Sprintf(planStepTemplateConstant, stepIndex+1, stepLabel(step)))
	}
}

func (printer *ProgressPrinter) writeLine(writer io.Writer, style lipgloss.Style, line string) {
	fmt.Fprintf(writer, lineTemplateConstant, style.Render(line))
}

// terminalWriter peels wrappers such as utils.FlushingWriter so color detection sees the real terminal.
func terminalWriter(writer io.Writer) io.Writer {
	for {
		wrapper, isWrapper := writer.(interface{ Unwrap() io.Writer })
		if !isWrapper {
			return writer
		}
		unwrapped := wrapper.Unwrap()
		if unwrapped == nil {
			return writer
		}
		writer = unwrapped
	}
}

func stepLabel(step sequence.Step) string {
	commandLine := step.Command.CommandLine()
	if step.DisplayName() == commandLine {
		return commandLine
	}
	return fmt.Sprintf(namedStepLabelTemplateConstant, step.DisplayName(), commandLine)
}
