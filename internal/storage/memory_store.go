package storage

import (
	"errors"
	"sort"
)

// ErrWriteFailed is returned by a MemoryStore armed with FailWrites.
var ErrWriteFailed = errors.New("storage: write failed")

// MemoryStore keeps values in process memory. Set FailWrites to simulate a
// store that rejects writes (quota exceeded, read-only disk).
type MemoryStore struct {
	values     map[string]string
	FailWrites bool
	Writes     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(key, value string) error {
	if s.FailWrites {
		return ErrWriteFailed
	}
	s.values[key] = value
	s.Writes++
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
