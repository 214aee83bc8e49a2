package build

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/appbuild/appbuildctl/internal/logging"
)

// Runner starts a planned invocation and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// State is the lifecycle state of a planned invocation.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	// StateFatal is a failure with no attempts left.
	StateFatal State = "fatal"
)

// StepResult records how one invocation went.
type StepResult struct {
	Invocation Invocation
	State      State
	Attempts   int
}

// Report summarizes an execution, one entry per invocation that was started.
type Report struct {
	Steps []StepResult
}

// Attempts returns the total number of subprocesses started.
func (r Report) Attempts() int {
	total := 0
	for _, s := range r.Steps {
		total += s.Attempts
	}
	return total
}

// Executor runs a plan sequentially, retrying packaging invocations.
type Executor struct {
	runner      Runner
	logger      *slog.Logger
	maxAttempts int
	secrets     []string
}

// ExecutorOption customizes an Executor.
type ExecutorOption func(*Executor)

// WithMaxAttempts sets the per-invocation attempt budget for packaging
// invocations. Values below one are treated as one.
func WithMaxAttempts(n int) ExecutorOption {
	return func(e *Executor) { e.maxAttempts = n }
}

// WithSecrets masks the given values in log messages.
func WithSecrets(secrets ...string) ExecutorOption {
	return func(e *Executor) { e.secrets = append(e.secrets, secrets...) }
}

// NewExecutor constructs an Executor.
func NewExecutor(runner Runner, logger *slog.Logger, opts ...ExecutorOption) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Executor{runner: runner, logger: logger, maxAttempts: 1}
	for _, opt := range opts {
		opt(e)
	}
	if e.maxAttempts < 1 {
		e.maxAttempts = 1
	}
	return e
}

// Execute runs every invocation in order and stops at the first fatal failure.
// The report covers all invocations that were started, including the failed one.
func (e *Executor) Execute(ctx context.Context, plan []Invocation) (Report, error) {
	var report Report
	for i, inv := range plan {
		step := StepResult{Invocation: inv, State: StatePending}
		err := e.runStep(ctx, &step)
		report.Steps = append(report.Steps, step)
		if err != nil {
			return report, err
		}
		e.logger.Debug("invocation finished", "step", i+1, "of", len(plan), "attempts", step.Attempts)
	}
	return report, nil
}

func (e *Executor) runStep(ctx context.Context, step *StepResult) error {
	inv := step.Invocation
	line := e.mask(inv.Line())

	budget := 1
	if inv.Kind == KindPackage {
		budget = e.maxAttempts
	}

	for step.Attempts < budget {
		if err := ctx.Err(); err != nil {
			step.State = StateFatal
			return err
		}

		step.Attempts++
		step.State = StateRunning
		e.logger.Info("running", "command", line, "dir", inv.Dir, "attempt", step.Attempts, "max", budget)

		err := e.runner.Run(ctx, inv)
		if err == nil {
			step.State = StateSucceeded
			return nil
		}
		step.State = StateFailed

		if inv.Kind != KindPackage {
			step.State = StateFatal
			return fmt.Errorf("%w: %s: %s", ErrBuildScript, line, e.mask(err.Error()))
		}
		if step.Attempts < budget {
			e.logger.Warn("packaging failed, retrying", "attempt", step.Attempts, "max", budget, "error", e.mask(err.Error()))
			step.State = StatePending
			continue
		}
		step.State = StateFatal
		return fmt.Errorf("%w after %d attempt(s): %s: %s", ErrPackaging, step.Attempts, line, e.mask(err.Error()))
	}
	return nil
}

func (e *Executor) mask(s string) string {
	return logging.MaskSecrets(s, e.secrets...)
}
