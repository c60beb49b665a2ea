package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/hexfsm/internal/presentation/tui"
	"github.com/aretw0/hexfsm/pkg/codec"
	"github.com/aretw0/hexfsm/pkg/dsl"
	"github.com/aretw0/hexfsm/pkg/labels"
	"github.com/aretw0/hexfsm/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	names := labels.NewTable()
	names.States[0] = "idle"
	names.States[1] = "busy"
	names.Inputs[0] = "go"
	names.Outputs[0] = "beep"

	tests := []struct {
		rec  record.Record
		want string
	}{
		{record.New(record.TypeDFATransition, 0, 0, 1, 0), "idle --go--> busy"},
		{record.New(record.TypeDFATransition, 0, record.Epsilon, 1, 0), "idle --ε--> busy"},
		{record.New(record.TypeMealyTransition, 0, 0, 1, 0), "idle --go/beep--> busy"},
		{record.New(record.TypeNFAMulti, 0, 0, 1, 1), "idle --go--> busy (more)"},
		{record.New(record.TypeStateDecl, 1, 3, 1, 0), "busy: initial, accepting, emits beep"},
		{record.New(record.TypeStateDecl, 0, 0, 0, 0), "idle"},
		{record.New(record.Type(9), 0, 0, 0, 0), "ignored"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tui.Describe(tt.rec, names))
	}

	assert.Equal(t, "S2 --i3--> S4", tui.Describe(record.New(record.TypeDFATransition, 2, 3, 4, 0), nil))
}

func TestRecordTable(t *testing.T) {
	out := tui.RecordTable([]record.Record{
		record.New(record.TypeStateDecl, 0, 1, 0, 0),
		record.New(record.TypeDFATransition, 0, 0, 0, 0),
	}, nil)

	assert.Contains(t, out, "Type")
	assert.Contains(t, out, "state_decl")
	assert.Contains(t, out, "0000 0000:0000 0000:0000")
	assert.Contains(t, out, "S0 --i0--> S0")
	assert.Contains(t, out, "╭")
}

func TestInfoMarkdown(t *testing.T) {
	m := dsl.Moore("lamp").
		Describe("a lamp").
		States("off", "on").
		Initial("off").
		Accepting("on").
		On("off", "toggle", "on").
		On("on", "toggle", "off").
		Emit("off", "dark").
		Emit("on", "light").
		MustBuild()

	res, err := codec.Encode(m)
	require.NoError(t, err)

	md := tui.InfoMarkdown(m, res.Records)
	assert.True(t, strings.HasPrefix(md, "# lamp\n"))
	assert.Contains(t, md, "| Kind | `moore` |")
	assert.Contains(t, md, "| Outputs | 2 |")
	assert.Contains(t, md, "| Inferred kind | `moore` |")
	assert.Contains(t, md, "| Features | moore-output |")
	assert.Contains(t, md, "| 0x0000 | off | initial | dark |")
	assert.Contains(t, md, "| 0x0001 | on | accepting | light |")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_| |_|")
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer(80)
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestIsTerminal_Nil(t *testing.T) {
	assert.False(t, tui.IsTerminal(nil))
}
