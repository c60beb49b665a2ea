package codec

import (
	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/record"
)

// Features summarizes what a record stream contains.
type Features struct {
	Mealy       bool // a MEALY_TRANSITION was seen
	MooreOutput bool // a STATE_DECL carried an output
	NFAMulti    bool // an NFA_MULTI was seen
	Epsilon     bool // a transition consumed no input
}

// Classify scans records and reports their features.
func Classify(records []record.Record) Features {
	var f Features
	for _, r := range records {
		switch r.Type {
		case record.TypeStateDecl:
			if r.F3 != 0 {
				f.MooreOutput = true
			}
			continue
		case record.TypeMealyTransition:
			f.Mealy = true
		case record.TypeNFAMulti:
			f.NFAMulti = true
		case record.TypeDFATransition:
		default:
			continue
		}
		if r.F2 == record.Epsilon {
			f.Epsilon = true
		}
	}
	return f
}

// InferKind picks the machine kind for a feature set.
// Priority is Mealy, then Moore, then NFA, then DFA.
func InferKind(f Features) domain.Kind {
	switch {
	case f.Mealy:
		return domain.KindMealy
	case f.MooreOutput:
		return domain.KindMoore
	case f.NFAMulti || f.Epsilon:
		return domain.KindNFA
	default:
		return domain.KindDFA
	}
}
