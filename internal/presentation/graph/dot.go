package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/hexfsm/pkg/domain"
)

// DOT renders a machine as a Graphviz digraph laid out left to right.
// Accepting states are double circles; a hidden __start node points at the
// initial state. Parallel transitions between the same pair of states share
// one edge whose label joins their inputs in first-seen order.
func DOT(m *domain.Machine, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph FSM {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [fontname=\"Helvetica\", fontsize=11];\n")
	sb.WriteString("    edge [fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("\n")

	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		fmt.Fprintf(&sb, "    label=\"%s\";\n", escapeDOT(title))
		sb.WriteString("\n")
	}

	if m.Initial != "" {
		sb.WriteString("    __start [shape=none, label=\"\", width=0, height=0];\n")
		fmt.Fprintf(&sb, "    __start -> \"%s\";\n", escapeDOT(m.Initial))
		sb.WriteString("\n")
	}

	for _, state := range m.States {
		attrs := []string{"shape=circle"}
		if m.IsAccepting(state) {
			attrs[0] = "shape=doublecircle"
		}
		if m.Kind == domain.KindMoore {
			if out, ok := m.StateOutputs[state]; ok {
				// \n is the DOT line break and must survive escaping.
				attrs = append(attrs, fmt.Sprintf("label=\"%s\\n/%s\"", escapeDOT(state), escapeDOT(out)))
			}
		}
		fmt.Fprintf(&sb, "    \"%s\" [%s];\n", escapeDOT(state), strings.Join(attrs, ", "))
	}
	sb.WriteString("\n")

	for _, e := range groupEdges(m) {
		fmt.Fprintf(&sb, "    \"%s\" -> \"%s\" [label=\"%s\"];\n",
			escapeDOT(e.from), escapeDOT(e.to), escapeDOT(strings.Join(e.labels, ", ")))
	}

	sb.WriteString("}\n")
	return sb.String()
}

type edge struct {
	from, to string
	labels   []string
}

// groupEdges merges transitions by (from, to), keeping first-seen order.
func groupEdges(m *domain.Machine) []*edge {
	var edges []*edge
	index := make(map[[2]string]*edge)

	for _, t := range m.Transitions {
		label := EdgeLabel(m, t)
		for _, to := range t.To {
			key := [2]string{t.From, to}
			e, ok := index[key]
			if !ok {
				e = &edge{from: t.From, to: to}
				index[key] = e
				edges = append(edges, e)
			}
			e.labels = append(e.labels, label)
		}
	}
	return edges
}

// EdgeLabel is the input symbol (ε for epsilon), with /output appended on Mealy machines.
func EdgeLabel(m *domain.Machine, t domain.Transition) string {
	label := "ε"
	if t.Input != nil {
		label = *t.Input
	}
	if m.Kind == domain.KindMealy && t.Output != nil {
		label = label + "/" + *t.Output
	}
	return label
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "<", "\\<")
	s = strings.ReplaceAll(s, ">", "\\>")
	return s
}
