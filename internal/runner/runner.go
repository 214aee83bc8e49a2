// Package runner starts planned invocations as child processes attached to the
// caller's standard streams.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"mvdan.cc/sh/v3/shell"

	"github.com/appbuild/appbuildctl/internal/build"
	"github.com/appbuild/appbuildctl/internal/env"
)

// Process runs invocations with exec. The zero value is not usable; use New.
type Process struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// BaseEnv is the environment every child starts from.
	BaseEnv env.Vars
}

// New returns a Process wired to the current process's streams and environment.
func New() *Process {
	return &Process{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		BaseEnv: env.FromOS(),
	}
}

var _ build.Runner = (*Process)(nil)

// Run splits the invocation's command line with shell quoting rules, expanding
// variables against the child environment, and waits for the process to exit.
func (p *Process) Run(ctx context.Context, inv build.Invocation) error {
	childEnv := env.Merge(p.BaseEnv, inv.Env)

	argv, err := Argv(inv.Line(), childEnv)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Env = childEnv.Environ()
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with code %d: %w", argv[0], exitErr.ExitCode(), err)
		}
		return fmt.Errorf("run %s: %w", argv[0], err)
	}
	return nil
}

// Argv splits a command line into arguments the way a POSIX shell would,
// looking up $VARIABLES in vars.
func Argv(line string, vars env.Vars) ([]string, error) {
	argv, err := shell.Fields(line, func(name string) string { return vars[name] })
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return argv, nil
}
