package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend is the persistence seam for the snapshot blob. The file
// implementation is used by the CLI; tests inject MemoryBackend.
type Backend interface {
	// Load returns the serialized snapshot, or (nil, nil) when no snapshot
	// has been persisted yet.
	Load() ([]byte, error)
	// Save replaces the persisted snapshot with data.
	Save(data []byte) error
}

// FileBackend persists the snapshot to one file on disk.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend writing to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load reads the snapshot file. A missing file is not an error; it means
// the store starts empty.
func (b *FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

// Save writes the snapshot atomically using temp file + os.Rename.
func (b *FileBackend) Save(data []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".classctl-data-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, b.path)
}

// MemoryBackend keeps the snapshot in memory. Zero value is an empty store.
type MemoryBackend struct {
	data []byte

	// FailSaves makes every Save return an error, for exercising the
	// rollback path in tests.
	FailSaves bool
}

func (b *MemoryBackend) Load() ([]byte, error) {
	if b.data == nil {
		return nil, nil
	}
	return append([]byte{}, b.data...), nil
}

func (b *MemoryBackend) Save(data []byte) error {
	if b.FailSaves {
		return fmt.Errorf("save disabled")
	}
	b.data = append([]byte{}, data...)
	return nil
}
