package domain

import (
	"fmt"
	"slices"
)

// Kind identifies the flavour of a machine.
type Kind string

const (
	KindDFA   Kind = "dfa"
	KindNFA   Kind = "nfa"
	KindMoore Kind = "moore"
	KindMealy Kind = "mealy"
)

// Kinds lists every supported machine kind.
var Kinds = []Kind{KindDFA, KindNFA, KindMoore, KindMealy}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds, k)
}

// ParseKind converts a textual kind, returning an error for unknown values.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown machine kind %q", s)
	}
	return k, nil
}

// Machine is the structured form of a finite-state machine.
// The order of States, Alphabet and OutputAlphabet decides the numeric ids used on the wire.
type Machine struct {
	Kind        Kind   `json:"type" yaml:"type"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	States    []string `json:"states" yaml:"states"`
	Alphabet  []string `json:"alphabet" yaml:"alphabet"`
	Initial   string   `json:"initial,omitempty" yaml:"initial,omitempty"`
	Accepting []string `json:"accepting" yaml:"accepting"`

	Transitions []Transition `json:"transitions" yaml:"transitions"`

	// StateOutputs is populated for Moore machines only.
	StateOutputs map[string]string `json:"state_outputs,omitempty" yaml:"state_outputs,omitempty"`

	// OutputAlphabet is meaningful for Moore and Mealy machines.
	OutputAlphabet []string `json:"output_alphabet,omitempty" yaml:"output_alphabet,omitempty"`
}

// New creates an empty machine of the given kind.
func New(kind Kind) *Machine {
	return &Machine{
		Kind:           kind,
		States:         []string{},
		Alphabet:       []string{},
		Accepting:      []string{},
		Transitions:    []Transition{},
		StateOutputs:   map[string]string{},
		OutputAlphabet: []string{},
	}
}

// AddState appends a state unless it is already present.
func (m *Machine) AddState(name string) {
	if !slices.Contains(m.States, name) {
		m.States = append(m.States, name)
	}
}

// AddInput appends an input symbol unless it is already present.
func (m *Machine) AddInput(symbol string) {
	if !slices.Contains(m.Alphabet, symbol) {
		m.Alphabet = append(m.Alphabet, symbol)
	}
}

// AddOutput appends an output symbol unless it is already present.
func (m *Machine) AddOutput(symbol string) {
	if !slices.Contains(m.OutputAlphabet, symbol) {
		m.OutputAlphabet = append(m.OutputAlphabet, symbol)
	}
}

// AddTransition appends a transition. A nil input denotes epsilon.
func (m *Machine) AddTransition(from string, input *string, to []string, output *string) {
	m.Transitions = append(m.Transitions, Transition{
		From:   from,
		Input:  input,
		To:     slices.Clone(to),
		Output: output,
	})
}

// SetStateOutput attaches a Moore output to a state.
func (m *Machine) SetStateOutput(state, output string) {
	if m.StateOutputs == nil {
		m.StateOutputs = make(map[string]string)
	}
	m.StateOutputs[state] = output
}

// IsAccepting reports whether state is in the accepting set.
func (m *Machine) IsAccepting(state string) bool {
	return slices.Contains(m.Accepting, state)
}

// HasOutputs reports whether the kind carries an output alphabet.
func (m *Machine) HasOutputs() bool {
	return m.Kind == KindMoore || m.Kind == KindMealy
}
