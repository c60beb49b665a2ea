package record

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/hexfsm/pkg/domain"
)

// Type is the record type code held in the first field.
type Type uint16

const (
	TypeDFATransition   Type = 0x0000
	TypeMealyTransition Type = 0x0001
	TypeStateDecl       Type = 0x0002
	TypeNFAMulti        Type = 0x0003
)

// Epsilon is the input field value of a move that consumes no input.
const Epsilon uint16 = 0xFFFF

// State declaration flags.
const (
	FlagInitial   uint16 = 0x1
	FlagAccepting uint16 = 0x2
)

// DefaultPerLine is the number of records FormatText places on each line.
const DefaultPerLine = 4

// hexDigits is the number of significant characters in a record.
const hexDigits = 20

func (t Type) String() string {
	switch t {
	case TypeDFATransition:
		return "dfa_transition"
	case TypeMealyTransition:
		return "mealy_transition"
	case TypeStateDecl:
		return "state_decl"
	case TypeNFAMulti:
		return "nfa_multi"
	default:
		return fmt.Sprintf("unknown(0x%04X)", uint16(t))
	}
}

// Record is one wire unit.
type Record struct {
	Type Type
	F1   uint16
	F2   uint16
	F3   uint16
	F4   uint16
}

// New builds a record from its five fields.
func New(t Type, f1, f2, f3, f4 uint16) Record {
	return Record{Type: t, F1: f1, F2: f2, F3: f3, F4: f4}
}

// String renders the record with Format.
func (r Record) String() string {
	return Format(r)
}

// Format renders r as "TTTT AAAA:BBBB CCCC:DDDD".
func Format(r Record) string {
	return fmt.Sprintf("%04X %04X:%04X %04X:%04X", uint16(r.Type), r.F1, r.F2, r.F3, r.F4)
}

// Parse reads a record, ignoring every space and colon.
// Exactly 20 hex digits must remain.
func Parse(s string) (Record, error) {
	clean := strings.NewReplacer(" ", "", ":", "").Replace(s)
	if len(clean) != hexDigits {
		return Record{}, &domain.FormatError{
			Input:  s,
			Reason: fmt.Sprintf("expected %d hex digits, got %d", hexDigits, len(clean)),
		}
	}

	var fields [5]uint16
	for i := range fields {
		v, err := strconv.ParseUint(clean[i*4:i*4+4], 16, 16)
		if err != nil {
			return Record{}, &domain.FormatError{
				Input:  s,
				Reason: fmt.Sprintf("field %d is not hexadecimal", i),
			}
		}
		fields[i] = uint16(v)
	}

	return New(Type(fields[0]), fields[1], fields[2], fields[3], fields[4]), nil
}

var token = regexp.MustCompile(`([0-9A-Fa-f]{4})\s*([0-9A-Fa-f]{4}):([0-9A-Fa-f]{4})\s*([0-9A-Fa-f]{4}):([0-9A-Fa-f]{4})`)

// Scan extracts every record from text regardless of line layout.
// Blank lines and lines starting with '#' are skipped.
func Scan(text string) ([]Record, error) {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}

	matches := token.FindAllStringSubmatch(strings.Join(kept, " "), -1)
	records := make([]Record, 0, len(matches))
	for _, m := range matches {
		r, err := Parse(strings.Join(m[1:], ""))
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// FormatText lays out records perLine to a row, separated by three spaces.
// Rows are joined with newlines and the result has no trailing newline.
func FormatText(records []Record, perLine int) string {
	if perLine < 1 {
		perLine = 1
	}

	var sb strings.Builder
	for i, r := range records {
		switch {
		case i == 0:
		case i%perLine == 0:
			sb.WriteByte('\n')
		default:
			sb.WriteString("   ")
		}
		sb.WriteString(Format(r))
	}
	return sb.String()
}
