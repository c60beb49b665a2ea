// Package process pipes rendered diagrams through allow-listed external programs,
// such as Graphviz, to produce image formats.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
)

// ErrNotRegistered is returned when Run is asked for a command outside the allow-list.
var ErrNotRegistered = errors.New("process not registered")

// Runner executes local processes.
// It follows a Strict Registry pattern for security (Allow-Listing).
type Runner struct {
	registry map[string]RegisteredProcess
	baseDir  string
}

// RegisteredProcess defines an allowed command execution.
type RegisteredProcess struct {
	Command string
	Args    []string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithGraphviz registers one entry per image format, each running program -T<format>.
func WithGraphviz(program string, formats ...string) RunnerOption {
	return func(r *Runner) {
		for _, f := range formats {
			r.Register(f, program, "-T"+f)
		}
	}
}

// GraphvizFormats are the image formats registered by NewGraphviz.
var GraphvizFormats = []string{"svg", "png", "pdf"}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]RegisteredProcess),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewGraphviz returns a Runner that converts DOT text with program (usually "dot").
func NewGraphviz(program string) *Runner {
	return NewRunner(WithGraphviz(program, GraphvizFormats...))
}

// Register adds a trusted command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = RegisteredProcess{
		Command: command,
		Args:    args,
	}
}

// Names lists the registered entries in sorted order.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run feeds input to the command registered as name and returns its stdout.
// Input travels on stdin only; nothing from it reaches the argument list.
func (r *Runner) Run(ctx context.Context, name string, input []byte) ([]byte, error) {
	proc, ok := r.registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrNotRegistered, name, strings.Join(r.Names(), ", "))
	}

	cmd := exec.CommandContext(ctx, proc.Command, proc.Args...)
	cmd.Dir = r.baseDir
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", proc.Command, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
