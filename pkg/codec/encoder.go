package codec

import (
	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/labels"
	"github.com/aretw0/hexfsm/pkg/record"
)

// Result is the output of Encode.
type Result struct {
	Records []record.Record

	// Names maps every assigned id back to its symbol, for building a label table.
	Names labels.NameMaps
}

// Labels returns the label table describing the id assignment of m.
func (r *Result) Labels(m *domain.Machine) *labels.Table {
	return labels.Build(m, r.Names)
}

// Encode validates m and converts it into records.
func Encode(m *domain.Machine) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	states, stateNames := assign(m.States)
	inputs, inputNames := assign(m.Alphabet)
	outputs, outputNames := assign(m.OutputAlphabet)

	res := &Result{
		Names: labels.NameMaps{
			States:  stateNames,
			Inputs:  inputNames,
			Outputs: outputNames,
		},
	}

	accepting := make(map[string]bool, len(m.Accepting))
	for _, s := range m.Accepting {
		accepting[s] = true
	}

	for _, s := range m.States {
		var flags uint16
		if s == m.Initial {
			flags |= record.FlagInitial
		}
		if accepting[s] {
			flags |= record.FlagAccepting
		}

		if m.Kind == domain.KindMoore {
			var out uint16
			if o, ok := m.StateOutputs[s]; ok {
				out = outputs[o] + 1
			}
			res.Records = append(res.Records, record.New(record.TypeStateDecl, states[s], flags, out, 0))
			continue
		}
		if flags != 0 {
			res.Records = append(res.Records, record.New(record.TypeStateDecl, states[s], flags, 0, 0))
		}
	}

	for _, t := range m.Transitions {
		src := states[t.From]
		in := record.Epsilon
		if t.Input != nil {
			in = inputs[*t.Input]
		}

		switch {
		case m.Kind == domain.KindMealy:
			// A missing output is written as output 0.
			var out uint16
			if t.Output != nil {
				out = outputs[*t.Output]
			}
			res.Records = append(res.Records,
				record.New(record.TypeMealyTransition, src, in, states[t.To[0]], out))
		case len(t.To) == 1:
			res.Records = append(res.Records,
				record.New(record.TypeDFATransition, src, in, states[t.To[0]], 0))
		default:
			for i, to := range t.To {
				var cont uint16
				if i < len(t.To)-1 {
					cont = 1
				}
				res.Records = append(res.Records,
					record.New(record.TypeNFAMulti, src, in, states[to], cont))
			}
		}
	}

	return res, nil
}

// assign gives each name its position as id.
func assign(names []string) (map[string]uint16, map[uint16]string) {
	ids := make(map[string]uint16, len(names))
	reverse := make(map[uint16]string, len(names))
	for i, n := range names {
		ids[n] = uint16(i)
		reverse[uint16(i)] = n
	}
	return ids, reverse
}
