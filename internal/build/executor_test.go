package build

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and fails according to failFn.
type fakeRunner struct {
	// calls holds the command line of every Run call in order.
	calls []string
	// failFn decides whether the n-th call (1-based) of a command line fails.
	failFn func(line string, n int) error

	seen map[string]int
}

func (f *fakeRunner) Run(_ context.Context, inv Invocation) error {
	if f.seen == nil {
		f.seen = make(map[string]int)
	}
	line := inv.Line()
	f.calls = append(f.calls, line)
	f.seen[line]++
	if f.failFn != nil {
		return f.failFn(line, f.seen[line])
	}
	return nil
}

var errExit = errors.New("exit status 1")

func packagePlan(archs ...string) []Invocation {
	req := baseRequest()
	req.Architectures[PlatformLinux] = archs
	plan, err := Plan(req)
	if err != nil {
		panic(err)
	}
	return plan
}

// TestExecutor_SucceedsOnLastAttempt fails max-1 times and then succeeds.
func TestExecutor_SucceedsOnLastAttempt(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{failFn: func(_ string, n int) error {
		if n < 3 {
			return errExit
		}
		return nil
	}}

	report, err := NewExecutor(runner, nil, WithMaxAttempts(3)).Execute(context.Background(), packagePlan())
	require.NoError(t, err)
	require.Len(t, runner.calls, 3)
	require.Len(t, report.Steps, 1)
	require.Equal(t, 3, report.Steps[0].Attempts)
	require.Equal(t, StateSucceeded, report.Steps[0].State)
	require.Equal(t, 3, report.Attempts())
}

// TestExecutor_ExhaustsBudget stops after max attempts and runs nothing further.
func TestExecutor_ExhaustsBudget(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{failFn: func(line string, _ int) error {
		if strings.Contains(line, "--x64") {
			return errExit
		}
		return nil
	}}

	report, err := NewExecutor(runner, nil, WithMaxAttempts(2)).Execute(context.Background(), packagePlan("x64", "arm64"))
	require.ErrorIs(t, err, ErrPackaging)
	require.Contains(t, err.Error(), "after 2 attempt(s)")
	require.Len(t, runner.calls, 2)
	for _, call := range runner.calls {
		require.Contains(t, call, "--x64")
	}
	require.Len(t, report.Steps, 1)
	require.Equal(t, StateFatal, report.Steps[0].State)
	require.Equal(t, 2, report.Steps[0].Attempts)
}

// TestExecutor_PerArchitectureBudget gives every architecture its own attempts.
func TestExecutor_PerArchitectureBudget(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{failFn: func(_ string, n int) error {
		if n == 1 {
			return errExit
		}
		return nil
	}}

	report, err := NewExecutor(runner, nil, WithMaxAttempts(2)).Execute(context.Background(), packagePlan("x64", "arm64", "armv7l"))
	require.NoError(t, err)
	require.Len(t, runner.calls, 6)
	require.Len(t, report.Steps, 3)
	for _, step := range report.Steps {
		require.Equal(t, 2, step.Attempts)
		require.Equal(t, StateSucceeded, step.State)
	}
	require.Contains(t, runner.calls[0], "--x64")
	require.Contains(t, runner.calls[2], "--arm64")
	require.Contains(t, runner.calls[4], "--armv7l")
}

// TestExecutor_ScriptNotRetried aborts the plan on the first script failure.
func TestExecutor_ScriptNotRetried(t *testing.T) {
	t.Parallel()

	req := baseRequest()
	req.ScriptBeforeBuild = "build"
	plan, err := Plan(req)
	require.NoError(t, err)

	runner := &fakeRunner{failFn: func(line string, _ int) error {
		if line == "npm run build" {
			return errExit
		}
		return nil
	}}

	report, err := NewExecutor(runner, nil, WithMaxAttempts(5)).Execute(context.Background(), plan)
	require.ErrorIs(t, err, ErrBuildScript)
	require.NotErrorIs(t, err, ErrPackaging)
	require.Equal(t, []string{"npm run build"}, runner.calls)
	require.Len(t, report.Steps, 1)
	require.Equal(t, StateFatal, report.Steps[0].State)
}

// TestExecutor_Order runs the script first and architectures in declared order.
func TestExecutor_Order(t *testing.T) {
	t.Parallel()

	req := baseRequest()
	req.ScriptBeforeBuild = "build"
	req.Architectures[PlatformLinux] = []string{"arm64", "x64"}
	plan, err := Plan(req)
	require.NoError(t, err)

	runner := &fakeRunner{}
	_, err = NewExecutor(runner, nil).Execute(context.Background(), plan)
	require.NoError(t, err)
	require.Equal(t, []string{
		"npm run build",
		"npx --no-install electron-builder --linux --arm64 --publish never",
		"npx --no-install electron-builder --linux --x64 --publish never",
	}, runner.calls)
}

// TestExecutor_LogsRetriesWithMaskedSecrets logs each failed attempt without leaking secrets.
func TestExecutor_LogsRetriesWithMaskedSecrets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	runner := &fakeRunner{failFn: func(_ string, _ int) error {
		return errors.New("upload rejected for token ghp_SECRETVALUE")
	}}

	_, err := NewExecutor(runner, logger, WithMaxAttempts(3), WithSecrets("ghp_SECRETVALUE")).
		Execute(context.Background(), packagePlan())
	require.ErrorIs(t, err, ErrPackaging)
	require.NotContains(t, err.Error(), "ghp_SECRETVALUE")

	out := buf.String()
	require.Equal(t, 2, strings.Count(out, "packaging failed, retrying"))
	require.Contains(t, out, "attempt=1")
	require.Contains(t, out, "attempt=2")
	require.NotContains(t, out, "ghp_SECRETVALUE")
	require.Contains(t, out, "*****")
}

// TestExecutor_CanceledContext does not start new attempts after cancellation.
func TestExecutor_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	runner := &fakeRunner{failFn: func(_ string, _ int) error {
		cancel()
		return errExit
	}}

	_, err := NewExecutor(runner, nil, WithMaxAttempts(4)).Execute(ctx, packagePlan())
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, runner.calls, 1)
}

// TestNewExecutor_ClampsAttempts treats non-positive budgets as a single attempt.
func TestNewExecutor_ClampsAttempts(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{failFn: func(_ string, _ int) error { return errExit }}
	_, err := NewExecutor(runner, nil, WithMaxAttempts(0)).Execute(context.Background(), packagePlan())
	require.ErrorIs(t, err, ErrPackaging)
	require.Len(t, runner.calls, 1)
}
