package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/hexfsm/pkg/labels"
	"github.com/aretw0/hexfsm/pkg/record"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RecordTable renders records as a rounded table with a decoded meaning column.
// Names resolve through names, which may be nil.
func RecordTable(records []record.Record, names *labels.Table) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Type", "Record", "Meaning"})

	for i, r := range records {
		tw.AppendRow(table.Row{i, r.Type.String(), record.Format(r), Describe(r, names)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// Describe explains a single record in terms of state and symbol names.
func Describe(r record.Record, names *labels.Table) string {
	input := func(v uint16) string {
		if v == record.Epsilon {
			return "ε"
		}
		return names.Input(v)
	}

	switch r.Type {
	case record.TypeDFATransition:
		return fmt.Sprintf("%s --%s--> %s", names.State(r.F1), input(r.F2), names.State(r.F3))
	case record.TypeMealyTransition:
		return fmt.Sprintf("%s --%s/%s--> %s", names.State(r.F1), input(r.F2), names.Output(r.F4), names.State(r.F3))
	case record.TypeNFAMulti:
		cont := "end"
		if r.F4 != 0 {
			cont = "more"
		}
		return fmt.Sprintf("%s --%s--> %s (%s)", names.State(r.F1), input(r.F2), names.State(r.F3), cont)
	case record.TypeStateDecl:
		var parts []string
		if r.F2&record.FlagInitial != 0 {
			parts = append(parts, "initial")
		}
		if r.F2&record.FlagAccepting != 0 {
			parts = append(parts, "accepting")
		}
		if r.F3 != 0 {
			parts = append(parts, "emits "+names.Output(r.F3-1))
		}
		if len(parts) == 0 {
			return names.State(r.F1)
		}
		return fmt.Sprintf("%s: %s", names.State(r.F1), strings.Join(parts, ", "))
	default:
		return "ignored"
	}
}
