/*
Package hexfsm converts finite-state machines (DFA, NFA, Moore and Mealy)
between a structured description and a dense fixed-width record format.

Every machine encodes to a list of 5-field records written as
"TTTT AAAA:BBBB CCCC:DDDD" in hex. States, input symbols and output symbols
are numbered by their position in the description; the numbering is kept in
an optional TOML label file so names survive the round trip. A .fsm archive
is a zip holding machine.hex and labels.toml.

# Record types

	0000  DFA transition     src, input, dst, 0
	0001  Mealy transition   src, input, dst, output
	0002  State declaration  state, flags (1 initial, 2 accepting), output+1 or 0, 0
	0003  NFA multi-target   src, input, dst, 1 if more targets follow else 0

Input 0xFFFF denotes an epsilon move. Unknown record types are skipped.

# Usage

	conv := hexfsm.New(hexfsm.WithStrictChains(true))

	m, err := conv.Load("turnstile.json")
	if err != nil {
		log.Fatal(err)
	}

	hex, labels, err := conv.EncodeText(m)
	if err != nil {
		log.Fatal(err)
	}

	back, err := conv.DecodeText(hex, labels)

The lower-level packages (pkg/record, pkg/labels, pkg/codec) can be used
directly when only part of the pipeline is needed.
*/
package hexfsm
