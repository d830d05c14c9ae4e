package setup

import "time"

// StepPhase describes what just happened to a step.
type StepPhase string

const (
	PhaseStarted   StepPhase = "started"
	PhaseSkipped   StepPhase = "skipped"
	PhaseSucceeded StepPhase = "succeeded"
	PhaseFailed    StepPhase = "failed"
	PhaseDryRun    StepPhase = "dry-run"
)

// StepEvent is a progress update emitted while running the step list.
type StepEvent struct {
	Phase     StepPhase // What happened
	StepID    string    // Step identifier
	Name      string    // Human-readable step name
	Index     int       // 1-based position in the step list
	Total     int       // Number of steps in the list
	Detail    string    // Skip reason, command line, or error text
	Timestamp time.Time // When this event occurred
}

// ProgressFunc is called with progress updates while steps run.
type ProgressFunc func(StepEvent)

// NoOpProgress is a progress callback that does nothing.
func NoOpProgress(_ StepEvent) {}

// StepTracker collects step events for later review.
type StepTracker struct {
	events []StepEvent
}

// NewStepTracker creates a new tracker.
func NewStepTracker() *StepTracker {
	return &StepTracker{
		events: make([]StepEvent, 0),
	}
}

// Callback returns a ProgressFunc that records events.
func (t *StepTracker) Callback() ProgressFunc {
	return func(e StepEvent) {
		t.events = append(t.events, e)
	}
}

// Events returns all recorded events.
func (t *StepTracker) Events() []StepEvent {
	return t.events
}

// Failed returns the failed events.
func (t *StepTracker) Failed() []StepEvent {
	var failed []StepEvent
	for _, e := range t.events {
		if e.Phase == PhaseFailed {
			failed = append(failed, e)
		}
	}
	return failed
}
