package dsl

// StateBuilder provides a fluent API for configuring one state.
type StateBuilder struct {
	name    string
	builder *Builder
}

// State registers a state and returns its builder.
// Asking for the same name twice returns the same builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	b.m.AddState(name)
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	return sb
}

// Initial marks the state as the start state.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.Initial(s.name)
	return s
}

// Accepting marks the state as accepting.
func (s *StateBuilder) Accepting() *StateBuilder {
	s.builder.Accepting(s.name)
	return s
}

// Emit sets the Moore output of the state.
func (s *StateBuilder) Emit(output string) *StateBuilder {
	s.builder.Emit(s.name, output)
	return s
}

// On adds an outgoing transition on input.
func (s *StateBuilder) On(input string, to ...string) *StateBuilder {
	s.builder.On(s.name, input, to...)
	return s
}

// Epsilon adds an outgoing transition that consumes no input.
func (s *StateBuilder) Epsilon(to ...string) *StateBuilder {
	s.builder.Epsilon(s.name, to...)
	return s
}

// OnEmit adds an outgoing Mealy transition.
func (s *StateBuilder) OnEmit(input, to, output string) *StateBuilder {
	s.builder.OnEmit(s.name, input, to, output)
	return s
}

// Name returns the state name.
func (s *StateBuilder) Name() string {
	return s.name
}
