package interchange

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Document is the structured description of a machine.
type Document struct {
	Type           string            `json:"type" yaml:"type" msgpack:"type"`
	Name           string            `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description,omitempty"`
	States         []string          `json:"states" yaml:"states" msgpack:"states"`
	Alphabet       []string          `json:"alphabet" yaml:"alphabet" msgpack:"alphabet"`
	Initial        string            `json:"initial,omitempty" yaml:"initial,omitempty" msgpack:"initial,omitempty"`
	Accepting      []string          `json:"accepting" yaml:"accepting" msgpack:"accepting"`
	Transitions    []Transition      `json:"transitions" yaml:"transitions" msgpack:"transitions"`
	StateOutputs   map[string]string `json:"state_outputs,omitempty" yaml:"state_outputs,omitempty" msgpack:"state_outputs,omitempty"`
	OutputAlphabet []string          `json:"output_alphabet,omitempty" yaml:"output_alphabet,omitempty" msgpack:"output_alphabet,omitempty"`
}

// Transition is one entry of Document.Transitions.
type Transition struct {
	From   string  `json:"from" yaml:"from" msgpack:"from"`
	Input  *string `json:"input" yaml:"input" msgpack:"input"`
	To     Targets `json:"to" yaml:"to" msgpack:"to"`
	Output *string `json:"output,omitempty" yaml:"output,omitempty" msgpack:"output,omitempty"`
}

// Targets is written as a plain string when it holds one state and as a list otherwise.
type Targets []string

// MarshalJSON implements json.Marshaler.
func (t Targets) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Targets) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*t = Targets{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("to: expected a state name or a list of names: %w", err)
	}
	*t = Targets(many)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Targets) MarshalYAML() (any, error) {
	if len(t) == 1 {
		return t[0], nil
	}
	return []string(t), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Targets) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = Targets{node.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*t = Targets(many)
		return nil
	default:
		return fmt.Errorf("to: expected a state name or a list of names at line %d", node.Line)
	}
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (t Targets) EncodeMsgpack(enc *msgpack.Encoder) error {
	if len(t) == 1 {
		return enc.EncodeString(t[0])
	}
	return enc.Encode([]string(t))
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (t *Targets) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeInterface()
	if err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		*t = Targets{x}
	case []any:
		out := make(Targets, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("to: list item of type %T is not a state name", item)
			}
			out = append(out, s)
		}
		*t = out
	case nil:
		*t = nil
	default:
		return fmt.Errorf("to: unexpected value of type %T", v)
	}
	return nil
}

// FromMachine builds the description of m.
func FromMachine(m *domain.Machine) *Document {
	doc := &Document{
		Type:           string(m.Kind),
		Name:           m.Name,
		Description:    m.Description,
		States:         nonNil(m.States),
		Alphabet:       nonNil(m.Alphabet),
		Initial:        m.Initial,
		Accepting:      nonNil(m.Accepting),
		Transitions:    make([]Transition, 0, len(m.Transitions)),
		OutputAlphabet: m.OutputAlphabet,
	}
	if len(m.StateOutputs) > 0 {
		doc.StateOutputs = m.StateOutputs
	}
	for _, t := range m.Transitions {
		doc.Transitions = append(doc.Transitions, Transition{
			From:   t.From,
			Input:  t.Input,
			To:     Targets(t.To),
			Output: t.Output,
		})
	}
	return doc
}

// ToMachine converts the description into a machine. It checks the kind but
// leaves reference checks to domain.Machine.Validate.
func (d *Document) ToMachine() (*domain.Machine, error) {
	kind, err := domain.ParseKind(d.Type)
	if err != nil {
		return nil, err
	}

	m := domain.New(kind)
	m.Name = d.Name
	m.Description = d.Description
	m.States = append(m.States, d.States...)
	m.Alphabet = append(m.Alphabet, d.Alphabet...)
	m.Initial = d.Initial
	m.Accepting = append(m.Accepting, d.Accepting...)
	m.OutputAlphabet = append(m.OutputAlphabet, d.OutputAlphabet...)
	for s, o := range d.StateOutputs {
		m.SetStateOutput(s, o)
	}
	for _, t := range d.Transitions {
		m.AddTransition(t.From, t.Input, t.To, t.Output)
	}
	return m, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
