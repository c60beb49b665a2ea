// Package interchange maps a domain.Machine to its structured description and back.
//
// The description is the document users write by hand:
//
//	{
//	  "type": "nfa",
//	  "states": ["q0", "q1"],
//	  "alphabet": ["a"],
//	  "initial": "q0",
//	  "accepting": ["q1"],
//	  "transitions": [
//	    {"from": "q0", "input": "a", "to": ["q0", "q1"]},
//	    {"from": "q1", "input": null, "to": "q0"}
//	  ]
//	}
//
// A transition's "to" is a single name or a list, and a null or missing input denotes
// epsilon. The same document can be carried as JSON, YAML or MessagePack through Codec.
package interchange
