package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

var (
	ErrStore = errors.New("could not store repository data")
	ErrLoad  = errors.New("could not load repository data")
)

// Store persists the data of a repository as a whole.
// Load has to return an error wrapping os.ErrNotExist, if there is no data under fileName yet.
type Store interface {
	Store(fileName string, data any) error
	Load(fileName string, data any) error
}

var (
	_ Store = (*noopStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

type noopStore struct{}

func (n noopStore) Store(_ string, _ any) error {
	return nil
}

func (n noopStore) Load(_ string, _ any) error {
	return nil
}

// NewMemoryStore returns a Store that keeps the encoded data in memory.
// Use it to hand data over from one repository to a new one, e.g. in tests.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: map[string][]byte{}}
}

// MemoryStore encodes the data as JSON, the same way JSONStore does,
// so it catches the same marshalling issues without touching the disc.
type MemoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (s *MemoryStore) Store(fileName string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[fileName] = b

	return nil
}

func (s *MemoryStore) Load(fileName string, data any) error {
	s.mu.Lock()
	b, ok := s.files[fileName]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s: %w", ErrLoad, fileName, os.ErrNotExist)
	}

	if err := json.Unmarshal(b, data); err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return nil
}

// Files returns the names of all files stored so far.
func (s *MemoryStore) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}

	return names
}
