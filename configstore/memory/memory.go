// Package memory provides an in-memory configuration store.
// It is suitable for development, testing, and deployments whose
// configuration is assembled in code at startup.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/giantswarm/oauth-compliance/configstore"
)

// Store is an in-memory implementation of configstore.Store.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[string]*configstore.Record
	logger  *slog.Logger
}

// New creates an empty in-memory store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		records: make(map[string]*configstore.Record),
		logger:  logger,
	}
}

// Set stores a record under name, replacing any existing record.
// The values map is snapshotted into an immutable Record.
func (s *Store) Set(name string, values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[name] = configstore.NewRecord(name, values)
}

// Delete removes the record stored under name, if any.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, name)
}

// Get retrieves the record stored under name.
func (s *Store) Get(_ context.Context, name string) (*configstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[name]
	if !ok {
		return nil, configstore.ErrNotFound
	}
	return record, nil
}

// Names lists all record names in lexical order.
func (s *Store) Names(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
