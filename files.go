package hexfsm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/interchange"
)

// File extensions understood by Load and Save, besides the interchange ones.
const (
	ExtArchive = ".fsm"
	ExtHex     = ".hex"
)

// LabelsSidecar returns the label file read next to a .hex file: "x.hex" -> "x.labels.toml".
func LabelsSidecar(hexPath string) string {
	return strings.TrimSuffix(hexPath, filepath.Ext(hexPath)) + ".labels.toml"
}

// Load reads a machine from disk, choosing the format by extension:
// .fsm archives, .hex record text (with an optional .labels.toml sidecar), or
// any interchange format (.json, .yaml, .yml, .msgpack, .mpk).
func (c *Converter) Load(path string) (*domain.Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ExtArchive:
		return c.Unpack(data)
	case ExtHex:
		sidecar, err := os.ReadFile(LabelsSidecar(path))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return c.DecodeText(string(data), sidecar)
	}

	cd, err := interchange.ForExtension(ext, false)
	if err != nil {
		return nil, fmt.Errorf("unknown file format: %s", ext)
	}
	return interchange.Unmarshal(data, cd)
}

// Marshal renders m in the format implied by ext (see Load). pretty only affects JSON.
func (c *Converter) Marshal(m *domain.Machine, ext string, pretty bool) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ExtArchive:
		return c.Pack(m)
	case ExtHex:
		hex, _, err := c.EncodeText(m)
		if err != nil {
			return nil, err
		}
		return []byte(hex + "\n"), nil
	}

	cd, err := interchange.ForExtension(ext, pretty)
	if err != nil {
		return nil, fmt.Errorf("unknown output format: %s", ext)
	}
	return interchange.Marshal(m, cd)
}

// Save writes m to path in the format implied by its extension.
// A .hex file also gets its .labels.toml sidecar unless labels are disabled.
func (c *Converter) Save(m *domain.Machine, path string, pretty bool) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ExtHex {
		data, err := c.Marshal(m, ext, pretty)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	}

	hex, labelFile, err := c.EncodeText(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(hex+"\n"), 0o644); err != nil {
		return err
	}
	if !c.includeLabels {
		return nil
	}
	sidecar := LabelsSidecar(path)
	if err := os.WriteFile(sidecar, labelFile, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", sidecar, err)
	}
	return nil
}

// DefaultOutput picks the conversion target when none is given:
// descriptions become archives and encoded forms become JSON.
func DefaultOutput(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	switch strings.ToLower(ext) {
	case ExtArchive, ExtHex:
		return base + ".json"
	default:
		return base + ExtArchive
	}
}
