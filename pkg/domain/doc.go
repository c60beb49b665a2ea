/*
Package domain contains the core model of a finite-state machine and the rules that make it encodable.

It defines the Machine value together with its transitions and the typed errors raised when a model
or a record stream breaks the wire format's limits. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Machine: A DFA, NFA, Moore or Mealy machine with ordered state, input and output tables.
  - Transition: A move from one state to one or more targets, optionally on epsilon.
  - Kind: The machine flavour, which decides which optional fields are meaningful.
  - FormatError, CapacityError, UndefinedSymbolError: The failures surfaced by the codec.
*/
package domain
