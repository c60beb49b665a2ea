package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Determinize builds a DFA accepting the same language as an NFA by subset construction.
//
// Each DFA state is a set of NFA states, named by joining the member names with ","
// in state order; a single-member set keeps the member's own name and a name already
// taken gets a "#n" suffix. Only sets reachable from the epsilon closure of the initial
// state are produced and moves to the empty set are dropped, so the result may be partial.
// A set is accepting when any member is. Machines of other kinds are returned as is.
func (m *Machine) Determinize() *Machine {
	if m.Kind != KindNFA {
		return m
	}

	d := New(KindDFA)
	d.Name = m.Name
	d.Description = m.Description
	d.Alphabet = slices.Clone(m.Alphabet)

	index := make(map[string]int, len(m.States))
	for i, s := range m.States {
		index[s] = i
	}
	start, ok := index[m.Initial]
	if !ok {
		return d
	}

	epsilon := make(map[int][]int)
	moves := make(map[int]map[string][]int)
	for _, t := range m.Transitions {
		from, ok := index[t.From]
		if !ok {
			continue
		}
		for _, to := range t.To {
			target, ok := index[to]
			if !ok {
				continue
			}
			if t.IsEpsilon() {
				epsilon[from] = append(epsilon[from], target)
				continue
			}
			if moves[from] == nil {
				moves[from] = make(map[string][]int)
			}
			moves[from][*t.Input] = append(moves[from][*t.Input], target)
		}
	}

	closure := func(seed []int) []int {
		seen := make(map[int]bool, len(seed))
		stack := slices.Clone(seed)
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[s] {
				continue
			}
			seen[s] = true
			stack = append(stack, epsilon[s]...)
		}
		set := make([]int, 0, len(seen))
		for s := range seen {
			set = append(set, s)
		}
		slices.Sort(set)
		return set
	}

	names := make(map[string]string)
	taken := make(map[string]bool)
	var queue [][]int

	add := func(set []int) string {
		members := make([]string, len(set))
		accepting := false
		for i, s := range set {
			members[i] = m.States[s]
			accepting = accepting || m.IsAccepting(m.States[s])
		}
		name := strings.Join(members, ",")
		for n := 2; taken[name]; n++ {
			name = strings.Join(members, ",") + "#" + strconv.Itoa(n)
		}
		taken[name] = true
		names[setKey(set)] = name

		d.States = append(d.States, name)
		if accepting {
			d.Accepting = append(d.Accepting, name)
		}
		queue = append(queue, set)
		return name
	}

	d.Initial = add(closure([]int{start}))

	for len(queue) > 0 {
		set := queue[0]
		queue = queue[1:]
		from := names[setKey(set)]

		for _, in := range m.Alphabet {
			var next []int
			for _, s := range set {
				next = append(next, moves[s][in]...)
			}
			if len(next) == 0 {
				continue
			}
			target := closure(next)
			to, ok := names[setKey(target)]
			if !ok {
				to = add(target)
			}
			d.AddTransition(from, Symbol(in), []string{to}, nil)
		}
	}
	return d
}

func setKey(set []int) string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " ")
}
