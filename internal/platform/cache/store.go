package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bytedance/sonic"
)

// Store holds rendered page fragments keyed by source name. Entries never
// expire: stale content is preferred over an empty page, and the refresh job
// is the only invalidation path.
//
// When a file path is configured the store snapshots itself to disk on every
// write, so a restart serves the last known fragments before the first
// upstream fetch completes.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
	path    string
}

// NewStore loads the snapshot at path when it exists. An unreadable or
// corrupt snapshot is discarded rather than blocking startup. An empty path
// disables persistence.
func NewStore(path string) *Store {
	s := &Store{
		entries: make(map[string]string),
		path:    path,
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			loaded := make(map[string]string)
			if err := sonic.Unmarshal(raw, &loaded); err == nil {
				s.entries = loaded
			}
		}
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool) {
	if key == "" {
		return "", false
	}

	s.mu.RLock()
	value, ok := s.entries[key]
	s.mu.RUnlock()
	return value, ok
}

func (s *Store) Set(_ context.Context, key, value string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = value
	s.persistLocked()
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.persistLocked()
	s.mu.Unlock()
}

// Keys returns the cached keys in stable order.
func (s *Store) Keys(_ context.Context) []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// persistLocked writes the snapshot via a temp file and rename so readers of
// the snapshot never observe a partial write. Callers must hold mu.
func (s *Store) persistLocked() {
	if s.path == "" {
		return
	}

	raw, err := sonic.Marshal(s.entries)
	if err != nil {
		return
	}

	tmp := fmt.Sprintf("%s.tmp", s.path)
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, s.path)
}
