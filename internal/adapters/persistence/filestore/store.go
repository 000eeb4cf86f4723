// Package filestore is the JSON-file storage driver. Each collection is a
// single <key>.json file holding the whole collection, read and rewritten
// atomically under one lock. It exists so the server can run without MySQL.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store reads and writes whole collections keyed by name.
type Store struct {
	mu  sync.Mutex
	dir string
}

// New opens (creating if needed) the storage directory.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read decodes the collection stored under key into v. A missing file is not
// an error; v is left at its zero value.
func (s *Store) Read(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(key, v)
}

// Write encodes v as the full collection under key. The file is replaced via
// a rename so a crash mid-write never leaves a truncated collection.
func (s *Store) Write(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(key, v)
}

// Update applies fn to the collection under key and writes the result back,
// all under the store lock. fn receives the decoded collection pointer.
func (s *Store) Update(key string, v interface{}, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.read(key, v); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return s.write(key, v)
}

// Keys returns the stored collection keys having the given prefix.
func (s *Store) Keys(prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		key := strings.TrimSuffix(name, ".json")
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *Store) read(key string, v interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) write(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}
