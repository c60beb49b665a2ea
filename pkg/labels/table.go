package labels

import (
	"fmt"
	"maps"

	"github.com/aretw0/hexfsm/pkg/domain"
)

// Version is the label file format version written by Marshal.
const Version = 1

// Fallback name prefixes.
const (
	StatePrefix  = "S"
	InputPrefix  = "i"
	OutputPrefix = "o"
)

// Meta is the machine-level metadata of the [fsm] section.
type Meta struct {
	Version     int    `toml:"version"`
	Kind        string `toml:"type"`
	Name        string `toml:"name,omitempty"`
	Description string `toml:"description,omitempty"`
}

// NameMaps holds the id to name assignment made by the encoder.
type NameMaps struct {
	States  map[uint16]string
	Inputs  map[uint16]string
	Outputs map[uint16]string
}

// Table maps numeric ids to names for each category.
// A nil *Table is valid and resolves every id to its fallback name.
type Table struct {
	Meta    Meta
	States  map[uint16]string
	Inputs  map[uint16]string
	Outputs map[uint16]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		States:  make(map[uint16]string),
		Inputs:  make(map[uint16]string),
		Outputs: make(map[uint16]string),
	}
}

// Build creates the table describing the encoder's id assignment for m.
func Build(m *domain.Machine, names NameMaps) *Table {
	t := NewTable()
	t.Meta = Meta{
		Version:     Version,
		Kind:        string(m.Kind),
		Name:        m.Name,
		Description: m.Description,
	}
	maps.Copy(t.States, names.States)
	maps.Copy(t.Inputs, names.Inputs)
	maps.Copy(t.Outputs, names.Outputs)
	return t
}

// State resolves a state id.
func (t *Table) State(id uint16) string {
	return resolve(t.states(), id, StatePrefix)
}

// Input resolves an input id.
func (t *Table) Input(id uint16) string {
	return resolve(t.inputs(), id, InputPrefix)
}

// Output resolves an output id.
func (t *Table) Output(id uint16) string {
	return resolve(t.outputs(), id, OutputPrefix)
}

// StateNames resolves every id in ids so that no two share a name. See Names.
func (t *Table) StateNames(ids []uint16) map[uint16]string {
	return Names(t.states(), ids, StatePrefix)
}

// InputNames is StateNames for input ids.
func (t *Table) InputNames(ids []uint16) map[uint16]string {
	return Names(t.inputs(), ids, InputPrefix)
}

// OutputNames is StateNames for output ids.
func (t *Table) OutputNames(ids []uint16) map[uint16]string {
	return Names(t.outputs(), ids, OutputPrefix)
}

// Names assigns a distinct name to each id of one category, walking ids in order.
// Labelled ids keep their label and unlabelled ids get prefix+id. A name already in
// use, or a fallback equal to some label, becomes the first free "<name>_<n>" with n >= 2.
func Names(labels map[uint16]string, ids []uint16, prefix string) map[uint16]string {
	reserved := make(map[string]bool, len(ids))
	for _, id := range ids {
		if n, ok := labels[id]; ok {
			reserved[n] = true
		}
	}

	used := make(map[string]bool, len(ids))
	free := func(base string) string {
		for i := 2; ; i++ {
			c := fmt.Sprintf("%s_%d", base, i)
			if !used[c] && !reserved[c] {
				return c
			}
		}
	}

	out := make(map[uint16]string, len(ids))
	for _, id := range ids {
		n, ok := labels[id]
		if !ok {
			continue
		}
		if used[n] {
			n = free(n)
		}
		used[n] = true
		out[id] = n
	}
	for _, id := range ids {
		if _, ok := labels[id]; ok {
			continue
		}
		n := fmt.Sprintf("%s%d", prefix, id)
		if used[n] || reserved[n] {
			n = free(n)
		}
		used[n] = true
		out[id] = n
	}
	return out
}

// Kind returns the machine kind recorded in the metadata, if any.
func (t *Table) Kind() (domain.Kind, bool) {
	if t == nil || t.Meta.Kind == "" {
		return "", false
	}
	return domain.Kind(t.Meta.Kind), true
}

func (t *Table) states() map[uint16]string {
	if t == nil {
		return nil
	}
	return t.States
}

func (t *Table) inputs() map[uint16]string {
	if t == nil {
		return nil
	}
	return t.Inputs
}

func (t *Table) outputs() map[uint16]string {
	if t == nil {
		return nil
	}
	return t.Outputs
}

func resolve(names map[uint16]string, id uint16, prefix string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("%s%d", prefix, id)
}
