package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/hexfsm/pkg/adapters/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lampJSON = `{
  "type": "moore",
  "name": "lamp",
  "states": ["dark", "lit"],
  "alphabet": ["toggle"],
  "initial": "dark",
  "accepting": ["lit"],
  "transitions": [
    {"from": "dark", "input": "toggle", "to": "lit"},
    {"from": "lit", "input": "toggle", "to": "dark"}
  ],
  "state_outputs": {"dark": "0", "lit": "1"},
  "output_alphabet": ["0", "1"]
}`

// run executes the root command in dir. Flag values persist between runs,
// so every test passes the flags it depends on explicitly.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lamp.json"), []byte(lampJSON), 0o644))
	return dir
}

func TestConvertAndDecode(t *testing.T) {
	dir := workspace(t)

	out, err := run(t, "convert", "lamp.json", "-o", "lamp.fsm", "--width", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "lamp.json -> lamp.fsm")
	assert.FileExists(t, filepath.Join(dir, "lamp.fsm"))

	out, err = run(t, "decode", "lamp.fsm", "--labels", "")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "moore"`)
	assert.Contains(t, out, `"lit"`)

	_, err = run(t, "convert", "lamp.fsm", "-o", "lamp.hex", "--width", "2")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "lamp.labels.toml"))

	hex, err := os.ReadFile(filepath.Join(dir, "lamp.hex"))
	require.NoError(t, err)
	assert.Contains(t, string(hex), "0002 0000:0001 0001:0000")

	out, err = run(t, "decode", "lamp.hex", "--labels", "")
	require.NoError(t, err)
	assert.Contains(t, out, `"dark"`)
}

func TestEncodeAndDump(t *testing.T) {
	workspace(t)

	out, err := run(t, "encode", "lamp.json", "--labels", "lamp.labels.toml")
	require.NoError(t, err)
	assert.Contains(t, out, "0002 0001:0002 0002:0000")
	assert.FileExists(t, "lamp.labels.toml")

	out, err = run(t, "dump", "lamp.json")
	require.NoError(t, err)
	assert.Contains(t, out, "state_decl")
	assert.Contains(t, out, "dark --toggle--> lit")
}

func TestRenderCommands(t *testing.T) {
	workspace(t)

	out, err := run(t, "dot", "lamp.json", "-t", "Lamp", "-o", "")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph FSM {")
	assert.Contains(t, out, `label="Lamp";`)

	out, err = run(t, "mermaid", "lamp.json", "-o", "")
	require.NoError(t, err)
	assert.Contains(t, out, "stateDiagram-v2")
	assert.NotContains(t, out, "classDef")

	out, err = run(t, "mermaid", "lamp.json", "-o", "", "--highlight", "lit")
	require.NoError(t, err)
	assert.Contains(t, out, "class s1 highlight")

	_, err = run(t, "dot", "lamp.json", "-o", "", "--format", "gif")
	assert.ErrorIs(t, err, process.ErrNotRegistered)
}

func TestGenerateCommand(t *testing.T) {
	dir := workspace(t)

	out, err := run(t, "generate", "lamp.json", "--lang", "c", "-o", "", "--package", "")
	require.NoError(t, err)
	assert.Contains(t, out, "#define LAMP_STATE_DARK 0")
	assert.Contains(t, out, "#define LAMP_OUTPUT_O1 1")
	assert.Contains(t, out, "#ifdef LAMP_IMPLEMENTATION")

	out, err = run(t, "generate", "lamp.json", "--lang", "tinygo", "-o", "", "--package", "lights")
	require.NoError(t, err)
	assert.Contains(t, out, "package lights")
	assert.Contains(t, out, "func (m *Lamp) Step(input LampInput) bool {")

	out, err = run(t, "generate", "lamp.json", "--lang", "rust", "-o", "lamp.rs", "--package", "")
	require.NoError(t, err)
	assert.Contains(t, out, "lamp.json -> lamp.rs")
	src, err := os.ReadFile(filepath.Join(dir, "lamp.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "pub enum LampState {")

	_, err = run(t, "generate", "lamp.json", "--lang", "zig", "-o", "", "--package", "")
	assert.ErrorContains(t, err, `unknown language "zig"`)
}

func TestValidateCommand(t *testing.T) {
	dir := workspace(t)

	out, err := run(t, "validate", "lamp.json")
	require.NoError(t, err)
	assert.Contains(t, out, "valid moore machine (2 states)")

	broken := `{"type":"dfa","states":["a"],"alphabet":["x"],"initial":"a",
	  "transitions":[{"from":"a","input":"y","to":"b"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(broken), 0o644))

	out, err = run(t, "validate", "broken.json")
	require.Error(t, err)
	assert.Contains(t, out, `undefined input "y"`)
	assert.Contains(t, out, `undefined state "b"`)
}

func TestInfoCommand(t *testing.T) {
	workspace(t)

	out, err := run(t, "info", "lamp.json")
	require.NoError(t, err)
	assert.Contains(t, out, "moore")
	assert.Contains(t, out, "dark")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hexfsm version")
}

func TestStoreFileBackend(t *testing.T) {
	dir := workspace(t)
	conf := filepath.Join(dir, "hexfsm.toml")
	require.NoError(t, os.WriteFile(conf, []byte(`
[store]
backend = "file"
dir = "`+filepath.ToSlash(filepath.Join(dir, "machines"))+`"
`), 0o644))

	_, err := run(t, "--config", conf, "store", "put", "lamp", "lamp.json")
	require.NoError(t, err)

	out, err := run(t, "--config", conf, "store", "list")
	require.NoError(t, err)
	assert.Equal(t, "lamp\n", out)

	out, err = run(t, "--config", conf, "store", "get", "lamp", "-o", "")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "lamp"`)

	_, err = run(t, "--config", conf, "store", "delete", "lamp")
	require.NoError(t, err)

	_, err = run(t, "--config", conf, "store", "get", "lamp", "-o", "")
	assert.Error(t, err)

	_, err = run(t, "--config", conf, "store", "put", "../escape", "lamp.json")
	assert.Error(t, err)
}

func TestStoreEncrypted(t *testing.T) {
	dir := workspace(t)
	conf := filepath.Join(dir, "hexfsm.toml")
	require.NoError(t, os.WriteFile(conf, []byte(`
[store]
backend = "file"
dir = "`+filepath.ToSlash(filepath.Join(dir, "machines"))+`"
encryption_key = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="
`), 0o644))

	_, err := run(t, "--config", conf, "store", "put", "lamp", "lamp.json")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "machines", "lamp.fsm"))
	require.NoError(t, err)
	assert.Equal(t, "HXE1", string(raw[:4]))

	out, err := run(t, "--config", conf, "store", "get", "lamp", "-o", "")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "lamp"`)

	out, err = run(t, "--config", conf, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "AAAAAAAAAAAA")
}
