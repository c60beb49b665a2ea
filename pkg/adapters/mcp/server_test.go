package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/hexfsm"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lampJSON = `{
  "type": "moore",
  "states": ["dark", "lit"],
  "alphabet": ["toggle"],
  "initial": "dark",
  "accepting": [],
  "transitions": [
    {"from": "dark", "input": "toggle", "to": "lit"},
    {"from": "lit", "input": "toggle", "to": "dark"}
  ],
  "state_outputs": {"dark": "0", "lit": "1"},
  "output_alphabet": ["0", "1"]
}`

func newTestServer() *Server {
	return NewServer(hexfsm.New(), nil)
}

func TestEncodeThenDecode(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	enc, err := s.handleEncode(ctx, mcp.CallToolRequest{}, MachineArgs{Machine: lampJSON})
	require.NoError(t, err)
	assert.Equal(t, 4, enc.Records)
	assert.Contains(t, enc.Hex, "0002 0000:0001 0001:0000")
	assert.Contains(t, enc.Labels, "moore")

	dec, err := s.handleDecode(ctx, mcp.CallToolRequest{}, DecodeArgs{Hex: enc.Hex, Labels: enc.Labels})
	require.NoError(t, err)
	require.NotNil(t, dec.Machine)
	assert.Equal(t, "moore", dec.Machine.Type)
	assert.Equal(t, []string{"dark", "lit"}, dec.Machine.States)
	assert.Equal(t, map[string]string{"dark": "0", "lit": "1"}, dec.Machine.StateOutputs)
}

func TestEncode_Rejections(t *testing.T) {
	s := newTestServer()

	_, err := s.handleEncode(context.Background(), mcp.CallToolRequest{}, MachineArgs{})
	assert.Error(t, err)

	_, err = s.handleEncode(context.Background(), mcp.CallToolRequest{}, MachineArgs{Machine: `{"type": "turing"}`})
	assert.Error(t, err)
}

func TestRenderDOT(t *testing.T) {
	s := newTestServer()

	res, err := s.handleRenderDOT(context.Background(), mcp.CallToolRequest{}, MachineArgs{Machine: lampJSON, Title: "Lamp"})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `label="Lamp";`)
	assert.Contains(t, text.Text, `"lit" [shape=circle, label="lit\n/1"];`)

	res, err = s.handleRenderDOT(context.Background(), mcp.CallToolRequest{}, MachineArgs{Machine: `{"type":"dfa","states":["a"],"initial":"b"}`})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestValidate(t *testing.T) {
	s := newTestServer()

	res, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, MachineArgs{Machine: lampJSON})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)

	res, err = s.handleValidate(context.Background(), mcp.CallToolRequest{}, MachineArgs{
		Machine: `{"type":"dfa","states":["a","a"],"initial":"b","transitions":[{"from":"a","input":"x","to":"a"}]}`,
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.GreaterOrEqual(t, len(res.Errors), 3)
}
