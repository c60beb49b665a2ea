package domain_test

import (
	"testing"

	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestMachine_AddIsIdempotent(t *testing.T) {
	m := domain.New(domain.KindNFA)
	m.AddState("A")
	m.AddState("A")
	m.AddInput("x")
	m.AddInput("x")
	m.AddOutput("o")
	m.AddOutput("o")

	assert.Equal(t, []string{"A"}, m.States)
	assert.Equal(t, []string{"x"}, m.Alphabet)
	assert.Equal(t, []string{"o"}, m.OutputAlphabet)
}

func TestMachine_AddTransitionCopiesTargets(t *testing.T) {
	m := domain.New(domain.KindNFA)
	to := []string{"B", "C"}
	m.AddTransition("A", nil, to, nil)
	to[0] = "Z"

	assert.Equal(t, []string{"B", "C"}, m.Transitions[0].To)
	assert.True(t, m.Transitions[0].IsEpsilon())
	assert.True(t, m.Transitions[0].IsMulti())
}

func TestParseKind(t *testing.T) {
	k, err := domain.ParseKind("moore")
	assert.NoError(t, err)
	assert.Equal(t, domain.KindMoore, k)

	_, err = domain.ParseKind("turing")
	assert.Error(t, err)
}
