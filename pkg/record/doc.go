/*
Package record implements the fixed-width text form of a single wire record.

A record is five unsigned 16-bit fields rendered as four-digit uppercase hex groups:

	TTTT AAAA:BBBB CCCC:DDDD

The first group is the record type. The meaning of the remaining four fields depends on it:

	Type                 F1      F2      F3        F4
	DFATransition  0000  source  input   target    0
	MealyTransition 0001 source  input   target    output
	StateDecl      0002  state   flags   output+1  0
	NFAMulti       0003  source  input   target    continuation

An input field of 0xFFFF denotes an epsilon move. Records carry no length or checksum;
the decoder derives all structure from field values and record order.

Scan recovers records from free-form text, ignoring comment lines that start with '#',
and FormatText lays them out several per line.
*/
package record
