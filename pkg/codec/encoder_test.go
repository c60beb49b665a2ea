package codec_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/hexfsm/pkg/codec"
	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_DFA(t *testing.T) {
	m := domain.New(domain.KindDFA)
	m.States = []string{"A", "B", "C"}
	m.Alphabet = []string{"x", "y"}
	m.Initial = "A"
	m.Accepting = []string{"A", "C"}
	m.AddTransition("A", domain.Symbol("y"), []string{"B"}, nil)
	m.AddTransition("B", domain.Symbol("x"), []string{"C"}, nil)

	res, err := codec.Encode(m)
	require.NoError(t, err)

	assert.Equal(t, []record.Record{
		record.New(record.TypeStateDecl, 0, 3, 0, 0),
		record.New(record.TypeStateDecl, 2, 2, 0, 0),
		record.New(record.TypeDFATransition, 0, 1, 1, 0),
		record.New(record.TypeDFATransition, 1, 0, 2, 0),
	}, res.Records, "state B has no flags and gets no declaration")

	assert.Equal(t, map[uint16]string{0: "A", 1: "B", 2: "C"}, res.Names.States)
	assert.Equal(t, map[uint16]string{0: "x", 1: "y"}, res.Names.Inputs)
	assert.Empty(t, res.Names.Outputs)
}

func TestEncode_NFAChain(t *testing.T) {
	m := domain.New(domain.KindNFA)
	m.States = []string{"A", "B", "C", "D"}
	m.Alphabet = []string{"x"}
	m.AddTransition("A", domain.Symbol("x"), []string{"B", "C", "D"}, nil)
	m.AddTransition("A", nil, []string{"D"}, nil)

	res, err := codec.Encode(m)
	require.NoError(t, err)

	assert.Equal(t, []record.Record{
		record.New(record.TypeNFAMulti, 0, 0, 1, 1),
		record.New(record.TypeNFAMulti, 0, 0, 2, 1),
		record.New(record.TypeNFAMulti, 0, 0, 3, 0),
		record.New(record.TypeDFATransition, 0, record.Epsilon, 3, 0),
	}, res.Records)
}

func TestEncode_Moore(t *testing.T) {
	m := domain.New(domain.KindMoore)
	m.States = []string{"off", "dim", "on"}
	m.Alphabet = []string{"press"}
	m.OutputAlphabet = []string{"dark", "low", "bright"}
	m.Initial = "off"
	m.SetStateOutput("on", "bright")
	m.SetStateOutput("dim", "low")

	res, err := codec.Encode(m)
	require.NoError(t, err)

	assert.Equal(t, []record.Record{
		record.New(record.TypeStateDecl, 0, 1, 0, 0),
		record.New(record.TypeStateDecl, 1, 0, 2, 0),
		record.New(record.TypeStateDecl, 2, 0, 3, 0),
	}, res.Records, "every state is declared and output id 2 is written as 3")
}

func TestEncode_Mealy(t *testing.T) {
	m := domain.New(domain.KindMealy)
	m.States = []string{"idle", "busy"}
	m.Alphabet = []string{"go"}
	m.OutputAlphabet = []string{"ack", "nak"}
	m.AddTransition("idle", domain.Symbol("go"), []string{"busy"}, domain.Symbol("nak"))
	m.AddTransition("busy", nil, []string{"idle"}, domain.Symbol("ack"))

	res, err := codec.Encode(m)
	require.NoError(t, err)

	assert.Equal(t, []record.Record{
		record.New(record.TypeMealyTransition, 0, 0, 1, 1),
		record.New(record.TypeMealyTransition, 1, record.Epsilon, 0, 0),
	}, res.Records)
}

func TestEncode_MealyWithoutOutput(t *testing.T) {
	m := domain.New(domain.KindMealy)
	m.States = []string{"A", "B"}
	m.Alphabet = []string{"x"}
	m.OutputAlphabet = []string{"o", "p"}
	m.AddTransition("A", domain.Symbol("x"), []string{"B"}, nil)
	m.AddTransition("B", domain.Symbol("x"), []string{"A"}, domain.Symbol("p"))

	res, err := codec.Encode(m)
	require.NoError(t, err)

	assert.Equal(t, []record.Record{
		record.New(record.TypeMealyTransition, 0, 0, 1, 0),
		record.New(record.TypeMealyTransition, 1, 0, 0, 1),
	}, res.Records, "a missing output is written as output 0")

	back, err := codec.Decode(res.Records, res.Labels(m))
	require.NoError(t, err)
	assert.Equal(t, "o", *back.Transitions[0].Output)
}

func TestEncode_RejectsInvalid(t *testing.T) {
	m := domain.New(domain.KindDFA)
	m.States = []string{"A"}
	m.AddTransition("A", domain.Symbol("ghost"), []string{"A"}, nil)

	_, err := codec.Encode(m)
	assert.ErrorIs(t, err, domain.ErrUndefinedSymbol)
}

func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

func TestEncode_CapacityBoundaries(t *testing.T) {
	t.Run("states at limit", func(t *testing.T) {
		m := domain.New(domain.KindDFA)
		m.States = names("s", 65535)
		m.Initial = "s65534"
		res, err := codec.Encode(m)
		require.NoError(t, err)
		assert.Equal(t, record.New(record.TypeStateDecl, 0xFFFE, 1, 0, 0), res.Records[0])
	})

	t.Run("states over limit", func(t *testing.T) {
		m := domain.New(domain.KindDFA)
		m.States = names("s", 65536)
		_, err := codec.Encode(m)
		var capErr *domain.CapacityError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, domain.CategoryState, capErr.Category)
		assert.Equal(t, 65536, capErr.Count)
	})

	t.Run("inputs at limit", func(t *testing.T) {
		m := domain.New(domain.KindDFA)
		m.States = []string{"A"}
		m.Alphabet = names("a", 65534)
		m.AddTransition("A", domain.Symbol("a65533"), []string{"A"}, nil)
		res, err := codec.Encode(m)
		require.NoError(t, err)
		assert.Equal(t, uint16(0xFFFD), res.Records[0].F2, "the last input never collides with epsilon")
	})

	t.Run("inputs over limit", func(t *testing.T) {
		m := domain.New(domain.KindDFA)
		m.Alphabet = names("a", 65535)
		_, err := codec.Encode(m)
		var capErr *domain.CapacityError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, domain.CategoryInput, capErr.Category)
	})
}
