package domain

// Transition moves the machine from one state to one or more targets.
type Transition struct {
	From string `json:"from" yaml:"from"`

	// Input is nil for an epsilon move.
	Input *string `json:"input" yaml:"input"`

	// To holds a single state for DFA, Moore and Mealy machines.
	// NFA transitions may list several targets; their order is kept on the wire.
	To []string `json:"to" yaml:"to"`

	// Output is only meaningful for Mealy machines.
	Output *string `json:"output,omitempty" yaml:"output,omitempty"`
}

// IsEpsilon reports whether the transition fires without consuming input.
func (t Transition) IsEpsilon() bool {
	return t.Input == nil
}

// IsMulti reports whether the transition has more than one target.
func (t Transition) IsMulti() bool {
	return len(t.To) > 1
}

// Symbol returns a pointer to a copy of s, for populating Input and Output.
func Symbol(s string) *string {
	return &s
}
