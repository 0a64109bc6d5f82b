package configstore

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Store.Get when no record exists under the
// requested name. Callers treat it as an ordinary value: a missing record is
// an evaluable state, not a failure.
var ErrNotFound = errors.New("configstore: record not found")

// Store defines the interface for reading named configuration records.
// Records are owned and mutated elsewhere (administrative tooling); from the
// evaluator's perspective the store is read-only.
// All methods accept context.Context for tracing and cancellation.
type Store interface {
	// Get retrieves the record stored under name.
	// Returns ErrNotFound if no record exists under that name.
	Get(ctx context.Context, name string) (*Record, error)

	// Names lists the names of all records in the store.
	Names(ctx context.Context) ([]string, error)
}

// Record is an immutable snapshot of one named configuration record.
// Keys use dot notation to address nested values, e.g. "metadata.op_policy_uri".
//
// A Record distinguishes "exists but empty" from "absent": an absent record is
// signalled by ErrNotFound from the store, while an existing record with no
// values is a valid, empty Record.
type Record struct {
	name   string
	values map[string]any
}

// NewRecord creates a record with the given name and values.
// The values map is used as-is; callers must not mutate it afterwards.
func NewRecord(name string, values map[string]any) *Record {
	if values == nil {
		values = map[string]any{}
	}
	return &Record{name: name, values: values}
}

// Name returns the record's name.
func (r *Record) Name() string {
	return r.name
}

// IsEmpty reports whether the record holds no values.
func (r *Record) IsEmpty() bool {
	return len(r.values) == 0
}

// Has reports whether a value exists under the given dotted key.
func (r *Record) Has(key string) bool {
	_, ok := r.lookup(key)
	return ok
}

// GetString returns the string value under key, or def when the key is absent
// or holds a non-string value. The default is explicit at each call site so
// per-rule defaults stay auditable.
func (r *Record) GetString(key, def string) string {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// GetBool returns the boolean value under key, or def when absent or not a
// boolean.
func (r *Record) GetBool(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// GetInt64 returns the integer value under key, or def when absent or not an
// integer type. YAML and JSON decoders produce int, int64, or float64
// depending on the source; all three are accepted.
func (r *Record) GetInt64(key string, def int64) int64 {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return def
	}
}

// GetStringSlice returns the string-slice value under key, or nil when absent.
// Scalar strings are returned as a single-element slice; mixed-type slices
// keep only their string elements.
func (r *Record) GetStringSlice(key string) []string {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case []string:
		return s
	case string:
		if s == "" {
			return nil
		}
		return []string{s}
	case []any:
		var out []string
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// lookup walks the nested value maps following dot-separated key segments.
func (r *Record) lookup(key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	// Fast path: flat key present at the top level.
	if v, ok := r.values[key]; ok {
		return v, true
	}

	segments := strings.Split(key, ".")
	var current any = r.values
	for _, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
