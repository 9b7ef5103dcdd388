// Package exec runs external tools after a generation pass, such as
// formatters and migration runners, with spinner feedback. The core pipeline never
// calls it; hooks are dispatched by the CLI once files are on disk.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner executes external commands.
type Runner struct {
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	dir     string
	timeout time.Duration

	// commandFunc is swapped out in tests.
	commandFunc func(name string, args ...string) *exec.Cmd
}

// Options configures a Runner.
type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Env     []string // additional environment variables
	Dir     string   // working directory
	Timeout time.Duration
}

// NewRunner creates a runner with sensible defaults.
func NewRunner(opts *Options) *Runner {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Runner{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		timeout:     opts.Timeout,
		commandFunc: exec.Command,
	}
}

// Run executes a command, streaming its output to the runner's writers.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := r.commandFunc(name, args...)
	if r.dir != "" {
		cmd.Dir = r.dir
	}
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return nil
	}
}

// Output executes a command and captures its combined output.
func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	var buf bytes.Buffer
	saved := Runner{stdout: r.stdout, stderr: r.stderr}
	r.stdout = &buf
	r.stderr = &buf
	err := r.Run(ctx, name, args...)
	r.stdout = saved.stdout
	r.stderr = saved.stderr
	return buf.String(), err
}
