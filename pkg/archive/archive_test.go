package archive_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/aretw0/hexfsm/pkg/archive"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_RoundTrip(t *testing.T) {
	src := archive.Contents{
		Machine: []byte("0000 0000:0000 0001:0000\n"),
		Labels:  []byte("[fsm]\nversion = 1\n"),
	}

	data, err := archive.Bytes(src)
	require.NoError(t, err)

	got, err := archive.FromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, src.Machine, got.Machine)
	assert.Equal(t, src.Labels, got.Labels)
	assert.True(t, got.HasLabels())
}

func TestBytes_WithoutLabels(t *testing.T) {
	data, err := archive.Bytes(archive.Contents{Machine: []byte("0000 0000:0000 0000:0000")})
	require.NoError(t, err)

	got, err := archive.FromBytes(data)
	require.NoError(t, err)
	assert.False(t, got.HasLabels())
}

func TestRead_MissingMachine(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(archive.LabelsEntry)
	require.NoError(t, err)
	_, err = w.Write([]byte("[fsm]"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = archive.FromBytes(buf.Bytes())
	assert.ErrorIs(t, err, archive.ErrMissingMachine)
}

func TestRead_NotAZip(t *testing.T) {
	_, err := archive.FromBytes([]byte("plain text"))
	assert.Error(t, err)
}

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.fsm")
	src := archive.Contents{Machine: []byte("0002 0000:0001 0000:0000")}

	require.NoError(t, archive.WriteFile(path, src))
	got, err := archive.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src.Machine, got.Machine)
}
