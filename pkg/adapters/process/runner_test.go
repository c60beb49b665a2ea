package process

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireProgram(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestRunner_Run(t *testing.T) {
	requireProgram(t, "cat")

	runner := NewRunner()
	runner.Register("echo_back", "cat")

	t.Run("Pipes Stdin To Stdout", func(t *testing.T) {
		out, err := runner.Run(context.Background(), "echo_back", []byte("digraph FSM {}\n"))
		require.NoError(t, err)
		assert.Equal(t, "digraph FSM {}\n", string(out))
	})

	t.Run("Fails For Unregistered Command", func(t *testing.T) {
		_, err := runner.Run(context.Background(), "hacker_script", nil)
		assert.ErrorIs(t, err, ErrNotRegistered)
		assert.Contains(t, err.Error(), "echo_back")
	})
}

func TestRunner_CommandFailure(t *testing.T) {
	requireProgram(t, "false")

	runner := NewRunner()
	runner.Register("broken", "false")

	_, err := runner.Run(context.Background(), "broken", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "false failed")
}

func TestRunner_Cancelled(t *testing.T) {
	requireProgram(t, "cat")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner()
	runner.Register("echo_back", "cat")
	_, err := runner.Run(ctx, "echo_back", []byte("x"))
	assert.Error(t, err)
}

func TestNewGraphviz(t *testing.T) {
	runner := NewGraphviz("dot")
	assert.Equal(t, []string{"pdf", "png", "svg"}, runner.Names())
	assert.Equal(t, []string{"-Tsvg"}, runner.registry["svg"].Args)
	assert.Equal(t, "dot", runner.registry["png"].Command)
}
