package kv

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is the persistent Store tier. The whole slot map is kept in
// memory and rewritten to a single JSON file on every mutation. A
// missing or unreadable file opens as an empty store so a corrupted
// data file never blocks startup.
type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

// OpenFileStore loads the store backed by the JSON file at path,
// creating parent directories as needed.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &FileStore{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		slog.Warn("kv: data file unreadable, starting empty", "path", path, "error", err)
		s.data = make(map[string]string)
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.persist()
}

func (s *FileStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	s.persist()
}

// persist writes the current map to disk. Callers must hold mu. A write
// failure is logged rather than surfaced; the in-memory state stays
// authoritative for the life of the process.
func (s *FileStore) persist() {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		slog.Warn("kv: marshal data file", "path", s.path, "error", err)
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		slog.Warn("kv: write data file", "path", s.path, "error", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		slog.Warn("kv: replace data file", "path", s.path, "error", err)
	}
}
