package sequence

// State enumerates the phases of a run.
type State int

// Run phases. Running always refers to the step at Report.CurrentStep.
const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:      "idle",
	StateRunning:   "running",
	StateCompleted: "completed",
	StateFailed:    "failed",
}

// String returns the lowercase name of the state.
func (state State) String() string {
	if stateName, known := stateNames[state]; known {
		return stateName
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (state State) Terminal() bool {
	return state == StateCompleted || state == StateFailed
}

// Report summarizes a run.
type Report struct {
	State          State
	CurrentStep    int
	CompletedSteps int
	Failure        error
}

// progress enforces Idle -> Running(i) -> Running(i+1) ... -> Completed | Failed.
type progress struct {
	report    Report
	stepCount int
}

func newProgress(stepCount int) *progress {
	return &progress{report: Report{State: StateIdle, CurrentStep: -1}, stepCount: stepCount}
}

func (tracker *progress) begin() {
	if tracker.report.State != StateIdle {
		return
	}
	tracker.report.State = StateRunning
	tracker.report.CurrentStep = 0
}

func (tracker *progress) advance() {
	if tracker.report.State != StateRunning {
		return
	}
	tracker.report.CompletedSteps++
	if tracker.report.CompletedSteps >= tracker.stepCount {
		tracker.report.State = StateCompleted
		return
	}
	tracker.report.CurrentStep++
}

func (tracker *progress) fail(failure error) {
	if tracker.report.State.Terminal() {
		return
	}
	tracker.report.State = StateFailed
	tracker.report.Failure = failure
}

func (tracker *progress) snapshot() Report {
	return tracker.report
}
