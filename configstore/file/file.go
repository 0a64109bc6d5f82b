// Package file provides a configuration store backed by a directory of YAML
// files, one file per record. The record name is the file name without the
// .yml/.yaml extension, matching the layout produced by configuration export
// tooling.
package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/giantswarm/oauth-compliance/configstore"
)

// Store reads configuration records from a directory of YAML files.
// Records are loaded once at construction time and served from memory;
// call Reload to pick up changes on disk.
type Store struct {
	dir    string
	logger *slog.Logger

	mu      sync.RWMutex
	records map[string]*configstore.Record
}

// New creates a store reading from dir. The directory is scanned immediately;
// a scan failure is returned rather than deferred to the first Get.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		dir:    dir,
		logger: logger,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rescans the directory and replaces the in-memory record set.
func (s *Store) Reload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read config directory %q: %w", s.dir, err)
	}

	records := make(map[string]*configstore.Record)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := recordName(entry.Name())
		if !ok {
			continue
		}

		values, err := s.loadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			// A single malformed file must not hide the rest of the
			// configuration from the evaluator.
			s.logger.Warn("Skipping malformed config file",
				"file", entry.Name(),
				"error", err)
			continue
		}
		records[name] = configstore.NewRecord(name, values)
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.logger.Debug("Config records loaded", "dir", s.dir, "count", len(records))
	return nil
}

// loadFile parses one YAML file into a value map.
func (s *Store) loadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return values, nil
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

// recordName strips a recognized YAML extension from a file name.
// Returns false for files that are not YAML records.
func recordName(fileName string) (string, bool) {
	for _, ext := range []string{".yml", ".yaml"} {
		if strings.HasSuffix(fileName, ext) {
			return strings.TrimSuffix(fileName, ext), true
		}
	}
	return "", false
}
