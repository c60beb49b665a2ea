package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/hexfsm/pkg/domain"
)

// Overlay marks states to highlight on the diagram.
type Overlay struct {
	Highlight []string
}

// Mermaid produces a stateDiagram-v2 for embedding in markdown.
// States are addressed by position (s0, s1, ...) and labelled with their names,
// so arbitrary state names never break the syntax. Accepting states get an
// edge to [*] and Moore outputs are attached as notes.
func Mermaid(m *domain.Machine, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString("    direction LR\n")

	ids := make(map[string]string, len(m.States))
	for i, state := range m.States {
		id := fmt.Sprintf("s%d", i)
		ids[state] = id
		fmt.Fprintf(&sb, "    state \"%s\" as %s\n", escapeMermaid(state), id)
	}

	if id, ok := ids[m.Initial]; ok {
		fmt.Fprintf(&sb, "    [*] --> %s\n", id)
	}

	for _, e := range groupEdges(m) {
		from, to := ids[e.from], ids[e.to]
		if from == "" || to == "" {
			continue
		}
		fmt.Fprintf(&sb, "    %s --> %s : %s\n", from, to, escapeMermaid(strings.Join(e.labels, ", ")))
	}

	for _, state := range m.Accepting {
		if id, ok := ids[state]; ok {
			fmt.Fprintf(&sb, "    %s --> [*]\n", id)
		}
	}

	if m.Kind == domain.KindMoore {
		for _, state := range m.States {
			if out, ok := m.StateOutputs[state]; ok {
				fmt.Fprintf(&sb, "    note right of %s : /%s\n", ids[state], escapeMermaid(out))
			}
		}
	}

	if overlay != nil && len(overlay.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:3px,color:#000\n")
		seen := make(map[string]bool)
		for _, state := range overlay.Highlight {
			id, ok := ids[state]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s highlight\n", id)
		}
	}

	return sb.String()
}

// escapeMermaid drops the characters Mermaid treats as syntax inside labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, ":", "#58;")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
