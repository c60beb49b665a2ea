package codec

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/labels"
	"github.com/aretw0/hexfsm/pkg/record"
)

// DecodeOption configures Decode.
type DecodeOption func(*decoder)

// WithStrictChains rejects NFA chains that are not closed by a record with continuation 0,
// and any DFA, Mealy or state declaration record arriving while a chain is open.
func WithStrictChains() DecodeOption {
	return func(d *decoder) {
		d.strict = true
	}
}

// WithLogger reports skipped records and tolerated chain breaks at debug level.
func WithLogger(logger *slog.Logger) DecodeOption {
	return func(d *decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// transition is a decoded transition still expressed in ids.
type transition struct {
	from   uint16
	input  *uint16
	to     []uint16
	output *uint16
}

type idSet map[uint16]struct{}

func (s idSet) add(id uint16) { s[id] = struct{}{} }

func (s idSet) sorted() []uint16 {
	ids := make([]uint16, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type decoder struct {
	strict bool
	logger *slog.Logger

	states  idSet
	inputs  idSet
	outputs idSet

	initial      *uint16
	accepting    idSet
	stateOutputs map[uint16]uint16
	transitions  []transition
	chain        chain
}

// Decode rebuilds a machine from records. The table may be nil, in which case
// every name is synthesized from its id.
func Decode(records []record.Record, table *labels.Table, opts ...DecodeOption) (*domain.Machine, error) {
	d := &decoder{
		logger:       slog.New(slog.DiscardHandler),
		states:       idSet{},
		inputs:       idSet{},
		outputs:      idSet{},
		accepting:    idSet{},
		stateOutputs: map[uint16]uint16{},
	}
	for _, opt := range opts {
		opt(d)
	}

	for i, r := range records {
		if err := d.observe(i, r); err != nil {
			return nil, err
		}
	}
	if g, ok := d.chain.flush(); ok {
		if d.strict {
			return nil, &domain.FormatError{
				Reason: fmt.Sprintf("nfa chain from state %d on input 0x%04X still open at end of stream", g.src, g.input),
			}
		}
		d.logger.Debug("Closing open nfa chain at end of stream", "src", g.src, "input", g.input)
		d.addGroup(g)
	}

	kind := InferKind(Classify(records))
	if k, ok := table.Kind(); ok {
		if !k.Valid() {
			return nil, &domain.FormatError{Reason: fmt.Sprintf("unknown machine type %q in labels", k)}
		}
		kind = k
	}

	return d.build(kind, table), nil
}

func (d *decoder) observe(i int, r record.Record) error {
	if d.strict && d.chain.state == chainAccumulating && interleaves(r.Type) {
		return &domain.FormatError{
			Input:  record.Format(r),
			Reason: fmt.Sprintf("record %d (%s) interrupts an open nfa chain", i, r.Type),
		}
	}

	switch r.Type {
	case record.TypeStateDecl:
		d.states.add(r.F1)
		if r.F2&record.FlagInitial != 0 {
			id := r.F1
			d.initial = &id
		}
		if r.F2&record.FlagAccepting != 0 {
			d.accepting.add(r.F1)
		}
		if r.F3 != 0 {
			d.stateOutputs[r.F1] = r.F3 - 1
			d.outputs.add(r.F3 - 1)
		}

	case record.TypeDFATransition:
		d.transitions = append(d.transitions, transition{
			from:  r.F1,
			input: d.input(r.F2),
			to:    []uint16{r.F3},
		})
		d.states.add(r.F1)
		d.states.add(r.F3)

	case record.TypeMealyTransition:
		out := r.F4
		d.transitions = append(d.transitions, transition{
			from:   r.F1,
			input:  d.input(r.F2),
			to:     []uint16{r.F3},
			output: &out,
		})
		d.states.add(r.F1)
		d.states.add(r.F3)
		d.outputs.add(out)

	case record.TypeNFAMulti:
		d.states.add(r.F1)
		d.states.add(r.F3)
		d.input(r.F2)

		completed, interrupted := d.chain.observe(r)
		if interrupted {
			if d.strict {
				return &domain.FormatError{
					Input:  record.Format(r),
					Reason: fmt.Sprintf("record %d starts a new nfa chain before the previous one ended", i),
				}
			}
			d.logger.Debug("Closing interrupted nfa chain", "record", i, "src", completed[0].src)
		}
		for _, g := range completed {
			d.addGroup(g)
		}

	default:
		d.logger.Debug("Skipping record of unknown type", "record", i, "type", r.Type.String())
	}
	return nil
}

// interleaves reports whether a record of type t breaks NFA_MULTI contiguity.
// Unknown types are skipped and never do.
func interleaves(t record.Type) bool {
	switch t {
	case record.TypeDFATransition, record.TypeMealyTransition, record.TypeStateDecl:
		return true
	default:
		return false
	}
}

// input registers a non-epsilon input id and returns it as a pointer.
func (d *decoder) input(v uint16) *uint16 {
	if v == record.Epsilon {
		return nil
	}
	d.inputs.add(v)
	return &v
}

func (d *decoder) addGroup(g group) {
	var in *uint16
	if g.input != record.Epsilon {
		v := g.input
		in = &v
	}
	d.transitions = append(d.transitions, transition{from: g.src, input: in, to: g.targets})
}

func (d *decoder) build(kind domain.Kind, table *labels.Table) *domain.Machine {
	m := domain.New(kind)
	if table != nil {
		m.Name = table.Meta.Name
		m.Description = table.Meta.Description
	}

	stateIDs, inputIDs, outputIDs := d.states.sorted(), d.inputs.sorted(), d.outputs.sorted()
	states := table.StateNames(stateIDs)
	inputs := table.InputNames(inputIDs)
	outputs := table.OutputNames(outputIDs)

	for _, id := range stateIDs {
		m.States = append(m.States, states[id])
	}
	for _, id := range inputIDs {
		m.Alphabet = append(m.Alphabet, inputs[id])
	}
	for _, id := range outputIDs {
		m.OutputAlphabet = append(m.OutputAlphabet, outputs[id])
	}

	if d.initial != nil {
		m.Initial = states[*d.initial]
	}
	for _, id := range d.accepting.sorted() {
		m.Accepting = append(m.Accepting, states[id])
	}
	for id, out := range d.stateOutputs {
		m.SetStateOutput(states[id], outputs[out])
	}

	for _, t := range d.transitions {
		var input, output *string
		if t.input != nil {
			input = domain.Symbol(inputs[*t.input])
		}
		if t.output != nil {
			output = domain.Symbol(outputs[*t.output])
		}
		to := make([]string, len(t.to))
		for i, id := range t.to {
			to[i] = states[id]
		}
		m.Transitions = append(m.Transitions, domain.Transition{
			From:   states[t.from],
			Input:  input,
			To:     to,
			Output: output,
		})
	}

	return m
}
