package codegen

import (
	"slices"
	"strconv"
	"strings"
)

// words is a name split into lowercase ASCII words, the common form behind every
// identifier style.
type words []string

func splitWords(s string) words {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
}

func (w words) pascal() string {
	var sb strings.Builder
	for _, word := range w {
		sb.WriteString(strings.ToUpper(word[:1]))
		sb.WriteString(word[1:])
	}
	return sb.String()
}

func (w words) camel() string {
	return w[0] + w[1:].pascal()
}

func (w words) upper() string {
	return strings.ToUpper(strings.Join(w, "_"))
}

func (w words) snake() string {
	return strings.Join(w, "_")
}

func (w words) flat() string {
	return strings.Join(w, "")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// symbol is a state, input or output with its source name and generated identifiers.
type symbol struct {
	name   string
	pascal string // enum variants and Go constant suffixes
	upper  string // C macro suffixes
}

// resolve turns one category of names into distinct identifiers. Names without usable
// characters become prefix+position, a leading digit gets prefix in front, and a
// clash with an earlier identifier (or Rust's Self) appends the first free number from 2.
func resolve(names []string, prefix string) []symbol {
	usedPascal := map[string]bool{"Self": true}
	usedUpper := map[string]bool{}

	out := make([]symbol, len(names))
	for i, name := range names {
		ws := splitWords(name)
		switch {
		case len(ws) == 0:
			ws = words{strings.ToLower(prefix) + strconv.Itoa(i)}
		case isDigit(ws[0][0]):
			ws = append(words{strings.ToLower(prefix) + ws[0]}, ws[1:]...)
		}

		candidate := ws
		for n := 2; usedPascal[candidate.pascal()] || usedUpper[candidate.upper()]; n++ {
			candidate = append(slices.Clone(ws), strconv.Itoa(n))
		}
		usedPascal[candidate.pascal()] = true
		usedUpper[candidate.upper()] = true
		out[i] = symbol{name: name, pascal: candidate.pascal(), upper: candidate.upper()}
	}
	return out
}

// machineWords names the generated types, falling back to "fsm".
func machineWords(name string) words {
	ws := splitWords(name)
	if len(ws) == 0 {
		return words{"fsm"}
	}
	if isDigit(ws[0][0]) {
		ws = append(words{"fsm" + ws[0]}, ws[1:]...)
	}
	return ws
}
