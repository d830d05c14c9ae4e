package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xVc323/raspai/pkg/doctor"
)

// Result is the outcome of a provisioning run.
type Result struct {
	Success    bool
	Completed  int           // Steps that ran and succeeded
	Skipped    int           // Steps whose condition was already satisfied
	FailedStep string        // ID of the step that aborted the run, if any
	Duration   time.Duration
	Error      error
}

// Runner executes a step list in order, stopping at the first failure.
type Runner struct {
	executor doctor.CommandExecutor
	progress ProgressFunc
}

// NewRunner creates a Runner using the real system.
func NewRunner() *Runner {
	return &Runner{
		executor: &doctor.RealExecutor{},
		progress: NoOpProgress,
	}
}

// NewRunnerWithExecutor creates a Runner with a custom executor (for testing).
func NewRunnerWithExecutor(exec doctor.CommandExecutor) *Runner {
	return &Runner{
		executor: exec,
		progress: NoOpProgress,
	}
}

// SetProgress installs a progress callback.
func (r *Runner) SetProgress(fn ProgressFunc) {
	if fn == nil {
		fn = NoOpProgress
	}
	r.progress = fn
}

// Run validates the options, builds the step list and executes it. The
// first failing step aborts the run; already satisfied steps are skipped,
// so re-runs are safe.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return &Result{Error: err}, err
	}

	return r.RunSteps(ctx, BuildSteps(opts), opts.DryRun)
}

// RunSteps executes an explicit step list.
func (r *Runner) RunSteps(ctx context.Context, steps []Step, dryRun bool) (*Result, error) {
	start := time.Now()
	result := &Result{}
	total := len(steps)

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			result.FailedStep = step.ID
			result.Error = err
			return result, err
		}

		event := StepEvent{
			StepID:    step.ID,
			Name:      step.Name,
			Index:     i + 1,
			Total:     total,
			Timestamp: time.Now(),
		}

		if step.Condition != nil {
			if run, reason := step.Condition(); !run {
				event.Phase = PhaseSkipped
				event.Detail = reason
				r.progress(event)
				result.Skipped++
				continue
			}
		}

		if dryRun {
			event.Phase = PhaseDryRun
			event.Detail = describeStep(step)
			r.progress(event)
			continue
		}

		event.Phase = PhaseStarted
		event.Detail = describeStep(step)
		r.progress(event)

		detail, err := r.runStep(ctx, step)

		event.Timestamp = time.Now()
		if err != nil {
			err = fmt.Errorf("step %s (%s): %w", step.ID, step.Name, err)
			event.Phase = PhaseFailed
			event.Detail = err.Error()
			r.progress(event)

			result.Duration = time.Since(start)
			result.FailedStep = step.ID
			result.Error = err
			return result, err
		}

		event.Phase = PhaseSucceeded
		event.Detail = detail
		r.progress(event)
		result.Completed++
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result, nil
}

func (r *Runner) runStep(ctx context.Context, step Step) (string, error) {
	if step.Run != nil {
		return step.Run(ctx)
	}

	if len(step.Command) == 0 {
		return "", fmt.Errorf("step has neither a command nor an action")
	}

	output, err := r.executor.CombinedOutput(step.Command[0], step.Command[1:]...)
	if err != nil {
		return "", fmt.Errorf("%s: %w\n%s", strings.Join(step.Command, " "), err, tail(string(output), 2000))
	}
	return "", nil
}

// describeStep renders a step for dry-run and progress output.
func describeStep(step Step) string {
	if len(step.Command) > 0 {
		return strings.Join(step.Command, " ")
	}
	return ""
}

// tail returns the last max bytes of s, trimmed.
func tail(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
