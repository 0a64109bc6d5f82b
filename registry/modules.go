package registry

import "sort"

// ModuleRegistry reports which feature modules are installed and enabled in
// the deployment under evaluation. Implementations are read-only from the
// evaluator's perspective.
type ModuleRegistry interface {
	// ModuleExists reports whether the named module is enabled.
	ModuleExists(name string) bool

	// ModuleList returns the names of all enabled modules.
	ModuleList() []string
}

// StaticModules is a fixed set of enabled module names.
// It is the ModuleRegistry used when the deployment's module list is known at
// startup, and by tests.
type StaticModules struct {
	enabled map[string]struct{}
}

// NewStaticModules creates a registry with the given modules enabled.
func NewStaticModules(names ...string) *StaticModules {
	m := &StaticModules{enabled: make(map[string]struct{}, len(names))}
	for _, name := range names {
		m.enabled[name] = struct{}{}
	}
	return m
}

// ModuleExists reports whether the named module is enabled.
func (m *StaticModules) ModuleExists(name string) bool {
	_, ok := m.enabled[name]
	return ok
}

// ModuleList returns the enabled module names in lexical order.
func (m *StaticModules) ModuleList() []string {
	names := make([]string, 0, len(m.enabled))
	for name := range m.enabled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
