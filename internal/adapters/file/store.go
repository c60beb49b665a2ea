package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/ports"
)

// Extension is appended to every machine name on disk.
const Extension = ".fsm"

// Store implements ports.MachineStore using the local filesystem.
// Each machine is one .fsm archive in BasePath.
type Store struct {
	BasePath string
}

var _ ports.MachineStore = (*Store)(nil)

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".hexfsm/machines".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".hexfsm", "machines")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.BasePath, name+Extension)
}

// Save writes the archive atomically: temp file, fsync, then rename over the destination.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure machine directory: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*"+Extension)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	dest := s.path(name)
	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("failed to remove existing machine for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move temp file into place: %w", err)
	}
	return nil
}

// Load reads the archive from disk.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ports.ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrMachineNotFound
		}
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}
	return data, nil
}

// Delete removes the archive file.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}

	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete machine file: %w", err)
	}
	return nil
}

// List returns every stored machine name, sorted. Leftover temp files are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || filepath.Ext(fileName) != Extension || strings.HasPrefix(fileName, "tmp-") {
			continue
		}
		names = append(names, strings.TrimSuffix(fileName, Extension))
	}
	slices.Sort(names)
	return names, nil
}
