package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

var _ Store = (*JSONStore)(nil)

// JSONStore persists the data as a human-readable JSON file on disc.
// A file is written to a temporary file first and then renamed,
// so a crash does not leave half a file behind.
// CAUTION: This is only intended for local development and demoing.
type JSONStore struct {
	dir string

	mu sync.Mutex
}

// NewJSONStore returns a JSONStore writing into dir.
// The directory is created, if it does not exist.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: could not create directory %s: %v", ErrStore, dir, err)
	}

	return &JSONStore{dir: dir, mu: sync.Mutex{}}, nil
}

func (s *JSONStore) Store(fileName string, data any) error {
	if data == nil {
		return nil
	}

	b, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := filepath.Join(s.dir, fileName)
	tmp := target + "." + uuid.New().String() + ".tmp"

	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	return nil
}

func (s *JSONStore) Load(fileName string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(filepath.Join(s.dir, fileName))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return nil
}
