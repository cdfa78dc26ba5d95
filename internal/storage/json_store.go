package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore is the simple flat-file fallback store. It is also the shape
// the oldest clients persisted, so the state manager reads it during
// legacy migration.
type JSONStore struct {
	path    string
	records map[string]string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.records = make(map[string]string)
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.records = make(map[string]string)
	if err := json.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		if isQuotaError(err) {
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	if s.records == nil {
		return "", false, fmt.Errorf("storage not initialized")
	}
	value, ok := s.records[key]
	return value, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.records == nil {
		return fmt.Errorf("storage not initialized")
	}
	s.records[key] = value
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.records == nil {
		return fmt.Errorf("storage not initialized")
	}
	delete(s.records, key)
	return s.save()
}

func (s *JSONStore) Path() string {
	return s.path
}
