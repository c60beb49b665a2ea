package dsl

import (
	"fmt"

	"github.com/aretw0/hexfsm/pkg/domain"
)

// Builder manages machine construction.
type Builder struct {
	m      *domain.Machine
	states map[string]*StateBuilder
}

// New creates a builder for a machine of the given kind.
func New(kind domain.Kind, name string) *Builder {
	m := domain.New(kind)
	m.Name = name
	return &Builder{
		m:      m,
		states: make(map[string]*StateBuilder),
	}
}

// DFA starts a deterministic machine.
func DFA(name string) *Builder { return New(domain.KindDFA, name) }

// NFA starts a nondeterministic machine.
func NFA(name string) *Builder { return New(domain.KindNFA, name) }

// Moore starts a machine with per-state outputs.
func Moore(name string) *Builder { return New(domain.KindMoore, name) }

// Mealy starts a machine with per-transition outputs.
func Mealy(name string) *Builder { return New(domain.KindMealy, name) }

// Describe sets the free-text description.
func (b *Builder) Describe(description string) *Builder {
	b.m.Description = description
	return b
}

// States declares states in id order.
func (b *Builder) States(names ...string) *Builder {
	for _, name := range names {
		b.m.AddState(name)
	}
	return b
}

// Inputs declares input symbols in id order.
func (b *Builder) Inputs(symbols ...string) *Builder {
	for _, s := range symbols {
		b.m.AddInput(s)
	}
	return b
}

// Outputs declares output symbols in id order.
func (b *Builder) Outputs(symbols ...string) *Builder {
	for _, s := range symbols {
		b.m.AddOutput(s)
	}
	return b
}

// Initial sets the start state.
func (b *Builder) Initial(state string) *Builder {
	b.m.AddState(state)
	b.m.Initial = state
	return b
}

// Accepting adds states to the accepting set.
func (b *Builder) Accepting(states ...string) *Builder {
	for _, s := range states {
		b.m.AddState(s)
		if !b.m.IsAccepting(s) {
			b.m.Accepting = append(b.m.Accepting, s)
		}
	}
	return b
}

// On adds a transition consuming input. Several targets make it nondeterministic.
func (b *Builder) On(from, input string, to ...string) *Builder {
	b.m.AddInput(input)
	return b.transition(from, domain.Symbol(input), to, nil)
}

// Epsilon adds a transition that consumes no input.
func (b *Builder) Epsilon(from string, to ...string) *Builder {
	return b.transition(from, nil, to, nil)
}

// OnEmit adds a Mealy transition producing output.
func (b *Builder) OnEmit(from, input, to, output string) *Builder {
	b.m.AddInput(input)
	b.m.AddOutput(output)
	return b.transition(from, domain.Symbol(input), []string{to}, domain.Symbol(output))
}

// Emit attaches a Moore output to a state.
func (b *Builder) Emit(state, output string) *Builder {
	b.m.AddState(state)
	b.m.AddOutput(output)
	b.m.SetStateOutput(state, output)
	return b
}

func (b *Builder) transition(from string, input *string, to []string, output *string) *Builder {
	b.m.AddState(from)
	for _, t := range to {
		b.m.AddState(t)
	}
	b.m.AddTransition(from, input, to, output)
	return b
}

// Build validates and returns the machine. The builder must not be reused afterwards.
func (b *Builder) Build() (*domain.Machine, error) {
	if err := b.m.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build machine %q: %w", b.m.Name, err)
	}
	return b.m, nil
}

// MustBuild is Build for fixtures and examples; it panics on an invalid machine.
func (b *Builder) MustBuild() *domain.Machine {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
