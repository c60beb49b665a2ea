/*
Package dsl provides a fluent builder for constructing machines in Go code.

It is the programmatic alternative to writing a JSON or YAML description:
states, symbols and transitions are declared with chained calls and Build
validates the result before handing back a *domain.Machine.

Example usage:

	m, err := dsl.DFA("turnstile").
		States("locked", "unlocked").
		Initial("locked").
		On("locked", "coin", "unlocked").
		On("unlocked", "push", "locked").
		Build()

Symbols referenced by On, Epsilon, OnEmit and Emit are registered on first
use, so States/Inputs/Outputs are only needed to fix the id order explicitly.
Per-state configuration is also available through State:

	b := dsl.Moore("lamp")
	b.State("off").Initial().Emit("dark").On("toggle", "on")
	b.State("on").Emit("light").On("toggle", "off")
	m, err := b.Build()
*/
package dsl
