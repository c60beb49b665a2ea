// Package archive reads and writes the .fsm container: a zip file holding the
// record text as machine.hex and, optionally, the label file as labels.toml.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
)

// Entry names inside the container.
const (
	MachineEntry = "machine.hex"
	LabelsEntry  = "labels.toml"
)

// ErrMissingMachine is returned when a container has no machine.hex entry.
var ErrMissingMachine = errors.New("machine.hex not found in archive")

// Contents are the raw entries of a container.
type Contents struct {
	Machine []byte
	Labels  []byte // nil when the container has no label file
}

// HasLabels reports whether the container carried a label file.
func (c *Contents) HasLabels() bool {
	return c.Labels != nil
}

// Write stores the entries in a new container on w. Labels are skipped when nil.
func Write(w io.Writer, c Contents) error {
	zw := zip.NewWriter(w)

	entries := []struct {
		name string
		data []byte
	}{
		{MachineEntry, c.Machine},
		{LabelsEntry, c.Labels},
	}
	for _, e := range entries {
		if e.data == nil && e.name != MachineEntry {
			continue
		}
		fw, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", e.name, err)
		}
		if _, err := fw.Write(e.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// Read extracts the entries of a container. Unknown entries are ignored.
func Read(r io.ReaderAt, size int64) (*Contents, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	var c Contents
	found := false
	for _, f := range zr.File {
		if f.Name != MachineEntry && f.Name != LabelsEntry {
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		switch f.Name {
		case MachineEntry:
			c.Machine = data
			found = true
		case LabelsEntry:
			c.Labels = data
		}
	}

	if !found {
		return nil, ErrMissingMachine
	}
	return &c, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Bytes renders a container in memory.
func Bytes(c Contents) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes reads a container held in memory.
func FromBytes(data []byte) (*Contents, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// ReadFile reads a container from disk.
func ReadFile(path string) (*Contents, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromBytes(data)
}

// WriteFile writes a container to disk.
func WriteFile(path string, c Contents) error {
	data, err := Bytes(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
