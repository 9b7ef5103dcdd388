package exec

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerRun(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&Options{Stdout: &out, Stderr: &out})

	err := r.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "hello")
}

func TestRunnerRunFailure(t *testing.T) {
	r := NewRunner(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	err := r.Run(context.Background(), "false")
	assert.Error(t, err)
}

func TestRunnerRunMissingCommand(t *testing.T) {
	r := NewRunner(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	err := r.Run(context.Background(), "definitely-not-a-command-4721")
	assert.Error(t, err)
}

func TestRunnerWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(&Options{Dir: dir, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	out, err := r.Output(context.Background(), "pwd")
	require.NoError(t, err)
	assert.Contains(t, out, dir)
}

func TestRunnerTimeout(t *testing.T) {
	r := NewRunner(&Options{
		Timeout: 50 * time.Millisecond,
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	})

	start := time.Now()
	err := r.Run(context.Background(), "sleep", "5")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunnerContextCancel(t *testing.T) {
	r := NewRunner(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := r.Run(ctx, "sleep", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunnerOutput(t *testing.T) {
	r := NewRunner(nil)

	out, err := r.Output(context.Background(), "echo", "captured")
	require.NoError(t, err)
	assert.Contains(t, out, "captured")
}
