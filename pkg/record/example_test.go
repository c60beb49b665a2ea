package record_test

import (
	"fmt"

	"github.com/aretw0/hexfsm/pkg/record"
)

func ExampleFormat() {
	r := record.New(record.TypeNFAMulti, 0, record.Epsilon, 2, 1)
	fmt.Println(record.Format(r))
	// Output: 0003 0000:FFFF 0002:0001
}

func ExampleScan() {
	records, err := record.Scan(`
# two transitions
0000 0000:0000 0001:0000   0000 0001:0000 0000:0000
`)
	if err != nil {
		panic(err)
	}
	for _, r := range records {
		fmt.Println(r.Type, r.F1, "->", r.F3)
	}
	// Output:
	// dfa_transition 0 -> 1
	// dfa_transition 1 -> 0
}
