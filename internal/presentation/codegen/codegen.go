// Package codegen emits standalone state machine sources (C, Rust and Go/TinyGo)
// from a machine. NFAs are determinized first; the generated code steps through
// one state at a time and never allocates.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/hexfsm/pkg/domain"
)

// Target languages. TinyGo uses the Go generator.
const (
	LangC      = "c"
	LangRust   = "rust"
	LangGo     = "go"
	LangTinyGo = "tinygo"
)

// Languages lists the accepted language names.
var Languages = []string{LangC, LangRust, LangGo, LangTinyGo}

// ErrNoInitialState is returned for machines that cannot be stepped.
var ErrNoInitialState = errors.New("machine has no initial state")

// Options tunes the generated source.
type Options struct {
	// Package names the Go package. Empty derives it from the machine name.
	Package string
}

// Extension returns the conventional file extension for lang, or "" if unknown.
func Extension(lang string) string {
	switch strings.ToLower(lang) {
	case LangC:
		return ".h"
	case LangRust:
		return ".rs"
	case LangGo, LangTinyGo:
		return ".go"
	}
	return ""
}

// Generate renders m as source code in lang.
func Generate(m *domain.Machine, lang string, opts Options) (string, error) {
	lang = strings.ToLower(lang)
	if Extension(lang) == "" {
		return "", fmt.Errorf("unknown language %q (want one of %s)", lang, strings.Join(Languages, ", "))
	}

	md, err := newModel(m)
	if err != nil {
		return "", err
	}

	switch lang {
	case LangC:
		return generateC(md), nil
	case LangRust:
		return generateRust(md), nil
	default:
		return generateGo(md, opts.Package)
	}
}

// arc is one deterministic move, by index into the model tables.
type arc struct {
	input  int
	to     int
	output int // -1 when the move sets no output
}

// model is a machine reduced to indexed tables with identifiers already resolved.
type model struct {
	name    string
	kind    string
	machine words

	states  []symbol
	inputs  []symbol
	outputs []symbol

	initial   int
	accepting []int
	arcs      [][]arc // per source state, in transition order
	stateOut  []int   // Moore output per state, -1 when absent
}

func newModel(m *domain.Machine) (*model, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	kind := string(m.Kind)
	if m.Kind == domain.KindNFA {
		kind += ", determinized"
	}
	m = m.Determinize()
	if m.Initial == "" {
		return nil, ErrNoInitialState
	}

	md := &model{
		name:    m.Name,
		kind:    kind,
		machine: machineWords(m.Name),
		states:  resolve(m.States, "S"),
		inputs:  resolve(m.Alphabet, "I"),
		arcs:    make([][]arc, len(m.States)),
		initial: m.StateIndex(m.Initial),
	}
	if m.HasOutputs() {
		md.outputs = resolve(m.OutputAlphabet, "O")
	}

	stateIdx := indexOf(m.States)
	inputIdx := indexOf(m.Alphabet)
	outputIdx := indexOf(m.OutputAlphabet)

	for i, s := range m.States {
		if m.IsAccepting(s) {
			md.accepting = append(md.accepting, i)
		}
	}

	md.stateOut = make([]int, len(m.States))
	for i, s := range m.States {
		md.stateOut[i] = -1
		if out, ok := m.StateOutputs[s]; ok && m.Kind == domain.KindMoore && md.hasOutputs() {
			md.stateOut[i] = outputIdx[out]
		}
	}

	seen := make(map[[2]int]bool)
	for _, t := range m.Transitions {
		if t.IsEpsilon() || len(t.To) == 0 {
			continue
		}
		from := stateIdx[t.From]
		in := inputIdx[*t.Input]
		if seen[[2]int{from, in}] {
			continue
		}
		seen[[2]int{from, in}] = true

		a := arc{input: in, to: stateIdx[t.To[0]], output: -1}
		switch {
		case m.Kind == domain.KindMoore:
			a.output = md.stateOut[a.to]
		case m.Kind == domain.KindMealy && t.Output != nil && md.hasOutputs():
			a.output = outputIdx[*t.Output]
		}
		md.arcs[from] = append(md.arcs[from], a)
	}
	return md, nil
}

func (md *model) hasOutputs() bool {
	return len(md.outputs) > 0
}

func (md *model) hasArcs() bool {
	for _, arcs := range md.arcs {
		if len(arcs) > 0 {
			return true
		}
	}
	return false
}

func indexOf(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return idx
}

// header describes the source machine on one line.
func (md *model) header() string {
	name := md.name
	if name == "" {
		name = "unnamed"
	}
	return oneLine(fmt.Sprintf("Machine: %s (%s)", name, md.kind))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
