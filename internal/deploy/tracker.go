// Package deploy simulates deployment progress for an estimated
// architecture. Nothing is provisioned; the tracker exists so the UI can
// show a realistic step sequence while a user evaluates an estimate.
package deploy

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Step is one named stage of a simulated deployment.
type Step struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"-"`
}

// defaultSteps walks the stages a real infrastructure rollout would,
// with durations short enough that a demo finishes inside a minute.
var defaultSteps = []Step{
	{Name: "Validating configuration", Duration: 2 * time.Second},
	{Name: "Creating VPC and networking", Duration: 8 * time.Second},
	{Name: "Provisioning compute resources", Duration: 15 * time.Second},
	{Name: "Configuring storage", Duration: 6 * time.Second},
	{Name: "Setting up databases", Duration: 12 * time.Second},
	{Name: "Applying security policies", Duration: 5 * time.Second},
	{Name: "Running health checks", Duration: 4 * time.Second},
}

// State is a deployment's lifecycle position.
type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateCancelled  State = "cancelled"
)

// Progress is a point-in-time snapshot of a tracker.
type Progress struct {
	State       State   `json:"state"`
	CurrentStep string  `json:"current_step,omitempty"`
	StepIndex   int     `json:"step_index"`
	TotalSteps  int     `json:"total_steps"`
	Percent     float64 `json:"percent"`
}

// Tracker advances through its steps on a timer once started. Reads and
// the advancing goroutine synchronize on a RWMutex; Progress never
// blocks behind a step sleep.
type Tracker struct {
	mu     sync.RWMutex
	steps  []Step
	index  int
	state  State
	logger zerolog.Logger
}

// NewTracker builds a pending tracker over the default step sequence.
func NewTracker(logger zerolog.Logger) *Tracker {
	return NewTrackerWithSteps(defaultSteps, logger)
}

// NewTrackerWithSteps is the injectable constructor; tests pass short
// steps so runs finish in milliseconds.
func NewTrackerWithSteps(steps []Step, logger zerolog.Logger) *Tracker {
	return &Tracker{
		steps:  steps,
		state:  StatePending,
		logger: logger,
	}
}

// Start launches the advancing goroutine. Cancelling ctx freezes the
// tracker in the cancelled state at its current step. Start on an
// already-started tracker is a no-op.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.state != StatePending {
		t.mu.Unlock()
		return
	}
	t.state = StateInProgress
	t.mu.Unlock()

	go t.run(ctx)
}

func (t *Tracker) run(ctx context.Context) {
	for i, step := range t.steps {
		t.mu.Lock()
		t.index = i
		t.mu.Unlock()

		t.logger.Debug().Str("step", step.Name).Msg("deployment step started")

		timer := time.NewTimer(step.Duration)
		select {
		case <-ctx.Done():
			timer.Stop()
			t.mu.Lock()
			t.state = StateCancelled
			t.mu.Unlock()
			return
		case <-timer.C:
		}
	}

	t.mu.Lock()
	t.index = len(t.steps)
	t.state = StateCompleted
	t.mu.Unlock()

	t.logger.Info().Msg("deployment simulation completed")
}

// Progress returns the current snapshot. Percent is completed steps over
// total, so a freshly started tracker reads 0 and a finished one 100.
func (t *Tracker) Progress() Progress {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p := Progress{
		State:      t.state,
		StepIndex:  t.index,
		TotalSteps: len(t.steps),
	}
	if len(t.steps) > 0 {
		p.Percent = float64(t.index) / float64(len(t.steps)) * 100
	}
	if t.index < len(t.steps) && t.state == StateInProgress {
		p.CurrentStep = t.steps[t.index].Name
	}
	return p
}
