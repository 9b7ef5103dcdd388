package exec

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHook struct {
	name string
	ran  bool
}

func (h *fakeHook) Name() string        { return h.name }
func (h *fakeHook) Description() string { return "fake" }
func (h *fakeHook) Run(ctx context.Context, runner *Runner) error {
	h.ran = true
	return nil
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	hook := &fakeHook{name: "fmt"}

	require.NoError(t, reg.Register(hook))
	assert.Error(t, reg.Register(&fakeHook{name: "fmt"}), "duplicate registration")

	got, ok := reg.Get("fmt")
	require.True(t, ok)
	assert.Equal(t, hook, got)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, reg.Register(&fakeHook{name: name}))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
}

func TestRegistryRun(t *testing.T) {
	reg := NewRegistry()
	hook := &fakeHook{name: "fmt"}
	require.NoError(t, reg.Register(hook))

	runner := NewRunner(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	require.NoError(t, reg.Run(context.Background(), "fmt", runner))
	assert.True(t, hook.ran)

	err := reg.Run(context.Background(), "missing", runner)
	assert.Error(t, err)
}
