package domain

import (
	"fmt"
	"slices"
	"sort"
)

// Validate checks that the machine can be encoded.
// It returns the first failure found: kind, capacity, duplicate names,
// undefined references and finally transition shape, in that order.
func (m *Machine) Validate() error {
	errs := m.check(true)
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// ValidateAll runs every check and collects all failures into an AggregateError.
func (m *Machine) ValidateAll() error {
	errs := m.check(false)
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}

func (m *Machine) check(first bool) []error {
	var errs []error
	add := func(err error) bool {
		errs = append(errs, err)
		return first
	}

	if _, err := ParseKind(string(m.Kind)); err != nil {
		if add(err) {
			return errs
		}
	}

	limits := []struct {
		category Category
		count    int
		limit    int
	}{
		{CategoryState, len(m.States), MaxStates},
		{CategoryInput, len(m.Alphabet), MaxInputs},
		{CategoryOutput, len(m.OutputAlphabet), MaxOutputs},
	}
	for _, l := range limits {
		if l.count > l.limit {
			if add(&CapacityError{Category: l.category, Count: l.count, Limit: l.limit}) {
				return errs
			}
		}
	}

	states := index(m.States)
	inputs := index(m.Alphabet)
	outputs := index(m.OutputAlphabet)

	for _, table := range []struct {
		category Category
		names    []string
		set      map[string]int
	}{
		{CategoryState, m.States, states},
		{CategoryInput, m.Alphabet, inputs},
		{CategoryOutput, m.OutputAlphabet, outputs},
	} {
		if len(table.set) == len(table.names) {
			continue
		}
		for i, name := range table.names {
			if table.set[name] != i {
				if add(&DuplicateSymbolError{Category: table.category, Symbol: name}) {
					return errs
				}
			}
		}
	}

	undefined := func(category Category, set map[string]int, name, where string) bool {
		if _, ok := set[name]; ok {
			return false
		}
		return add(&UndefinedSymbolError{Category: category, Symbol: name, Context: where})
	}

	if m.Initial != "" && undefined(CategoryState, states, m.Initial, "initial") {
		return errs
	}
	for _, s := range m.Accepting {
		if undefined(CategoryState, states, s, "accepting") {
			return errs
		}
	}

	for i, t := range m.Transitions {
		where := fmt.Sprintf("transition %d", i)
		if undefined(CategoryState, states, t.From, where+" source") {
			return errs
		}
		for _, to := range t.To {
			if undefined(CategoryState, states, to, where+" target") {
				return errs
			}
		}
		if t.Input != nil && undefined(CategoryInput, inputs, *t.Input, where+" input") {
			return errs
		}
		if m.Kind == KindMealy && t.Output != nil && undefined(CategoryOutput, outputs, *t.Output, where+" output") {
			return errs
		}
	}

	if m.Kind == KindMoore {
		keys := make([]string, 0, len(m.StateOutputs))
		for s := range m.StateOutputs {
			keys = append(keys, s)
		}
		sort.Strings(keys)
		for _, s := range keys {
			if undefined(CategoryState, states, s, "state output") {
				return errs
			}
			if undefined(CategoryOutput, outputs, m.StateOutputs[s], "state output of "+s) {
				return errs
			}
		}
	}

	for i, t := range m.Transitions {
		var reason string
		switch {
		case len(t.To) == 0:
			reason = "no target state"
		case t.IsMulti() && m.Kind != KindNFA:
			reason = fmt.Sprintf("%d targets on a %s machine", len(t.To), m.Kind)
		}
		if reason != "" && add(&ShapeError{Index: i, Reason: reason}) {
			return errs
		}
	}

	return errs
}

// index maps each name to the position of its first occurrence.
func index(names []string) map[string]int {
	set := make(map[string]int, len(names))
	for i, n := range names {
		if _, seen := set[n]; !seen {
			set[n] = i
		}
	}
	return set
}

// StateIndex returns the position of a state, or -1 if absent.
func (m *Machine) StateIndex(state string) int {
	return slices.Index(m.States, state)
}
