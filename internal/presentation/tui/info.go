package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/hexfsm/pkg/codec"
	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/record"
)

// InfoMarkdown summarises a machine and its encoded form as markdown.
func InfoMarkdown(m *domain.Machine, records []record.Record) string {
	var sb strings.Builder

	title := m.Name
	if title == "" {
		title = "Machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if m.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", m.Description)
	}

	initial := m.Initial
	if initial == "" {
		initial = "(none)"
	}

	sb.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Kind | `%s` |\n", m.Kind)
	fmt.Fprintf(&sb, "| States | %d |\n", len(m.States))
	fmt.Fprintf(&sb, "| Inputs | %d |\n", len(m.Alphabet))
	if m.HasOutputs() {
		fmt.Fprintf(&sb, "| Outputs | %d |\n", len(m.OutputAlphabet))
	}
	fmt.Fprintf(&sb, "| Transitions | %d |\n", len(m.Transitions))
	fmt.Fprintf(&sb, "| Initial | `%s` |\n", escapeCell(initial))
	fmt.Fprintf(&sb, "| Accepting | %s |\n", codeList(m.Accepting))

	if records != nil {
		f := codec.Classify(records)
		fmt.Fprintf(&sb, "| Records | %d |\n", len(records))
		fmt.Fprintf(&sb, "| Inferred kind | `%s` |\n", codec.InferKind(f))
		fmt.Fprintf(&sb, "| Features | %s |\n", features(f))
	}

	sb.WriteString("\n## States\n\n")
	sb.WriteString("| Id | State | Flags |")
	if m.Kind == domain.KindMoore {
		sb.WriteString(" Output |")
	}
	sb.WriteString("\n|---|---|---|")
	if m.Kind == domain.KindMoore {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for i, s := range m.States {
		var flags []string
		if s == m.Initial {
			flags = append(flags, "initial")
		}
		if m.IsAccepting(s) {
			flags = append(flags, "accepting")
		}
		fmt.Fprintf(&sb, "| 0x%04X | %s | %s |", i, escapeCell(s), strings.Join(flags, ", "))
		if m.Kind == domain.KindMoore {
			fmt.Fprintf(&sb, " %s |", escapeCell(m.StateOutputs[s]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func features(f codec.Features) string {
	var set []string
	if f.Mealy {
		set = append(set, "mealy")
	}
	if f.MooreOutput {
		set = append(set, "moore-output")
	}
	if f.NFAMulti {
		set = append(set, "nfa-multi")
	}
	if f.Epsilon {
		set = append(set, "epsilon")
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, ", ")
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + escapeCell(s) + "`"
	}
	return strings.Join(quoted, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
