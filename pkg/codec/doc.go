/*
Package codec converts between a domain.Machine and its ordered record stream.

Encode assigns every state, input and output a dense id equal to its position in the
machine's tables, emits state declarations for flagged states (all states for Moore
machines) and one record per transition target. Multi-target NFA transitions become a
contiguous chain of NFA_MULTI records linked by a continuation flag.

Decode walks the records once. NFA chains are regrouped by a small state machine that
accumulates targets while (source, input) stays the same, and the machine kind is
inferred from the record features unless the label table names it.

By default a chain that changes (source, input) without a terminating record, or that is
still open at the end of the stream, is closed silently, and a DFA, Mealy or state
declaration record in the middle of a chain is decoded without closing it. WithStrictChains
rejects all three.
*/
package codec
