// Package labels maps the numeric ids of a record stream back to human-readable names.
//
// A Table is usually read from the labels.toml entry of an archive:
//
//	[fsm]
//	version = 1
//	type = "dfa"
//	name = "turnstile"
//
//	[states]
//	0x0000 = "locked"
//	0x0001 = "unlocked"
//
//	[inputs]
//	0x0000 = "coin"
//	0x0001 = "push"
//
// Ids without a label resolve to synthesized names with a distinct prefix per category
// ("S0", "i0", "o0"), so names never collide across categories.
package labels
