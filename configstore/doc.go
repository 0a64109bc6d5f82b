// Package configstore provides read access to the named configuration records
// that describe an OAuth deployment.
//
// The configstore package defines the core types used throughout the
// oauth-compliance library:
//   - Store: read-only access to named configuration records
//   - Record: an immutable snapshot of one record with typed, defaulted getters
//
// A missing record is an ordinary value (ErrNotFound), never an exception:
// the compliance rules treat "not configured" as an evaluable state.
//
// Implementations are provided in subpackages:
//   - configstore/memory: in-memory records for development and testing
//   - configstore/file: records loaded from a directory of YAML files
//   - configstore/mock: failure injection for unit testing
package configstore
