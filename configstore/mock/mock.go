// Package mock provides a configstore.Store implementation with failure
// injection for unit testing error handling and the evaluator failsafe.
package mock

import (
	"context"
	"sync"

	"github.com/giantswarm/oauth-compliance/configstore"
)

// Store is a mock configstore.Store with configurable failure modes.
// The zero value is usable and behaves like an empty store.
type Store struct {
	mu      sync.RWMutex
	records map[string]*configstore.Record

	// GetError, when set, is returned by every Get call.
	GetError error

	// PanicOnGet, when true, makes Get panic with PanicValue.
	// Used to exercise the evaluator's top-level failsafe.
	PanicOnGet bool

	// PanicValue is the value passed to panic when PanicOnGet is set.
	// Defaults to "mock store panic" when empty.
	PanicValue string

	// GetCalls counts Get invocations.
	GetCalls int
}

// New creates an empty mock store.
func New() *Store {
	return &Store{records: make(map[string]*configstore.Record)}
}

// Set stores a record under name.
func (s *Store) Set(name string, values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = make(map[string]*configstore.Record)
	}
	s.records[name] = configstore.NewRecord(name, values)
}

// Get retrieves a record, honoring the configured failure modes.
func (s *Store) Get(_ context.Context, name string) (*configstore.Record, error) {
	s.mu.Lock()
	s.GetCalls++
	s.mu.Unlock()

	if s.PanicOnGet {
		v := s.PanicValue
		if v == "" {
			v = "mock store panic"
		}
		panic(v)
	}
	if s.GetError != nil {
		return nil, s.GetError
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[name]
	if !ok {
		return nil, configstore.ErrNotFound
	}
	return record, nil
}

// Names lists all record names.
func (s *Store) Names(_ context.Context) ([]string, error) {
	if s.GetError != nil {
		return nil, s.GetError
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	return names, nil
}
