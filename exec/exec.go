// Package exec runs external template scripts. Custom templates ship their
// own generator program; the toolkit invokes it with a common argument
// contract (--output, --data-file) and captures its output for diagnostics.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/flanksource/commons/logger"
)

// Process describes a single script invocation. The zero value is not
// usable; start from Command().
type Process struct {
	Cmd     string
	Args    []string
	Env     map[string]string
	Cwd     string
	Timeout time.Duration

	Started  *time.Time
	Duration time.Duration
	Stdout   bytes.Buffer
	Stderr   bytes.Buffer
	Err      error
}

// Command creates a process for the given program and arguments.
func Command(cmd string, args ...string) Process {
	return Process{Cmd: cmd, Args: args}
}

func (p Process) WithEnv(env map[string]string) Process {
	p.Env = env
	return p
}

func (p Process) WithCwd(cwd string) Process {
	p.Cwd = cwd
	return p
}

func (p Process) WithTimeout(timeout time.Duration) Process {
	p.Timeout = timeout
	return p
}

func (p Process) Name() string {
	return p.Cmd
}

// String returns the command line as it would appear in a shell.
func (p Process) String() string {
	return strings.Join(append([]string{p.Cmd}, p.Args...), " ")
}

// Out returns combined captured output, stderr first since that is where
// script failures explain themselves.
func (p Process) Out() string {
	return strings.TrimSpace(p.Stderr.String() + p.Stdout.String())
}

// Run executes the process and returns it with captured output and Err set.
func (p Process) Run(ctx context.Context) Process {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.Cmd, p.Args...)
	cmd.Dir = p.Cwd
	cmd.Stdout = &p.Stdout
	cmd.Stderr = &p.Stderr
	if len(p.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range p.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	start := time.Now()
	p.Started = &start
	logger.Debugf("exec: %s", p.String())
	p.Err = cmd.Run()
	p.Duration = time.Since(start)

	if p.Err != nil {
		logger.Debugf("exec failed after %s: %v", p.Duration, p.Err)
	}
	return p
}

// IsOK reports whether the process ran and exited zero.
func (p Process) IsOK() bool {
	return p.Started != nil && p.Err == nil
}

// Error wraps the process error with whatever the script printed.
func (p Process) Error() error {
	if p.Err == nil {
		return nil
	}
	if out := p.Out(); out != "" {
		return fmt.Errorf("%s: %w: %s", p.Name(), p.Err, out)
	}
	return fmt.Errorf("%s: %w", p.Name(), p.Err)
}
