package labels

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
)

// Section names of a label file.
const (
	SectionMeta    = "fsm"
	SectionStates  = "states"
	SectionInputs  = "inputs"
	SectionOutputs = "outputs"
)

// Parse reads a label file with the given parser.
// A nil parser selects TOMLParser.
func Parse(data []byte, parser Parser) (*Table, error) {
	if parser == nil {
		parser = TOMLParser{}
	}
	doc, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// FromDocument converts a parsed Document into a Table.
// Sections other than fsm, states, inputs and outputs are ignored.
func FromDocument(doc Document) (*Table, error) {
	t := NewTable()

	if meta, ok := doc[SectionMeta]; ok {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &t.Meta,
			TagName:          "toml",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(meta); err != nil {
			return nil, &domain.FormatError{Reason: fmt.Sprintf("invalid [%s] section: %v", SectionMeta, err)}
		}
		if t.Meta.Version > Version {
			return nil, &domain.FormatError{Reason: fmt.Sprintf("unsupported label version %d", t.Meta.Version)}
		}
		if t.Meta.Kind != "" && !domain.Kind(t.Meta.Kind).Valid() {
			return nil, &domain.FormatError{Reason: fmt.Sprintf("unknown machine type %q", t.Meta.Kind)}
		}
	}

	for _, s := range []struct {
		name string
		into map[uint16]string
	}{
		{SectionStates, t.States},
		{SectionInputs, t.Inputs},
		{SectionOutputs, t.Outputs},
	} {
		for key, name := range doc[s.name] {
			id, err := ParseID(key)
			if err != nil {
				return nil, err
			}
			s.into[id] = name
		}
	}

	return t, nil
}

// ParseID reads a label key, either 0x-prefixed hex or decimal.
func ParseID(key string) (uint16, error) {
	key = strings.TrimSpace(key)
	digits, base := key, 10
	if strings.HasPrefix(key, "0x") || strings.HasPrefix(key, "0X") {
		digits, base = key[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		return 0, &domain.FormatError{Input: key, Reason: "invalid label id"}
	}
	return uint16(v), nil
}

// FormatID renders an id as a label key.
func FormatID(id uint16) string {
	return fmt.Sprintf("0x%04X", id)
}

type labelFile struct {
	FSM     Meta              `toml:"fsm"`
	States  map[string]string `toml:"states,omitempty"`
	Inputs  map[string]string `toml:"inputs,omitempty"`
	Outputs map[string]string `toml:"outputs,omitempty"`
}

// Marshal renders t as a label file. Empty sections are omitted.
func Marshal(t *Table) ([]byte, error) {
	if t == nil {
		t = NewTable()
	}
	meta := t.Meta
	if meta.Version == 0 {
		meta.Version = Version
	}
	out, err := toml.Marshal(labelFile{
		FSM:     meta,
		States:  keyed(t.States),
		Inputs:  keyed(t.Inputs),
		Outputs: keyed(t.Outputs),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal labels: %w", err)
	}
	return out, nil
}

func keyed(names map[uint16]string) map[string]string {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]string, len(names))
	for id, name := range names {
		out[FormatID(id)] = name
	}
	return out
}

// IDs returns the ids of names in ascending order.
func IDs(names map[uint16]string) []uint16 {
	ids := make([]uint16, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
