//go:build fuzz
// +build fuzz

package record

import (
	"testing"
)

// FuzzParse checks that any accepted text formats back to a record that parses identically.
func FuzzParse(f *testing.F) {
	f.Add("0000 0001:0002 0003:0004")
	f.Add("0003 0000:FFFF 0001:0000")
	f.Add("ffff ffff:ffff ffff:ffff")
	f.Add("0000 0001:0002 0003:000")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		if len(s) > 1024 {
			t.Skip("Input too large for fuzz test")
		}

		r, err := Parse(s)
		if err != nil {
			return
		}

		again, err := Parse(Format(r))
		if err != nil {
			t.Fatalf("Parse(Format(%v)) failed: %v", r, err)
		}
		if again != r {
			t.Errorf("Round trip mismatch: got %v, want %v", again, r)
		}
	})
}
