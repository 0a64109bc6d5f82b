package registry

import "log/slog"

// Resolver determines which identity of a capability is active in a
// deployment. It combines the static CapabilitySet with the deployment's
// ModuleRegistry.
type Resolver struct {
	capabilities *CapabilitySet
	modules      ModuleRegistry
	logger       *slog.Logger
}

// NewResolver creates a resolver.
// A nil capability set falls back to DefaultCapabilities.
func NewResolver(capabilities *CapabilitySet, modules ModuleRegistry, logger *slog.Logger) *Resolver {
	if capabilities == nil {
		capabilities = DefaultCapabilities()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		capabilities: capabilities,
		modules:      modules,
		logger:       logger,
	}
}

// IsEnabled reports whether any identity of the capability is enabled.
// Priority order: bundled identity, standalone identity, base name itself.
func (r *Resolver) IsEnabled(base string) bool {
	_, ok := r.EnabledIdentity(base)
	return ok
}

// EnabledIdentity returns the active module identity for a capability, in
// priority order: bundled, standalone, then the base name itself.
// Returns false if no identity is enabled.
//
// An unregistered capability degrades to a direct existence check on the base
// name, with a warning: rules should only refer to registered capabilities.
func (r *Resolver) EnabledIdentity(base string) (string, bool) {
	mapping, ok := r.capabilities.Resolve(base)
	if !ok {
		r.logger.Warn("Unknown capability, falling back to direct module lookup",
			"capability", base)
		if r.modules.ModuleExists(base) {
			return base, true
		}
		return "", false
	}

	if mapping.Bundled != "" && r.modules.ModuleExists(mapping.Bundled) {
		return mapping.Bundled, true
	}
	if mapping.Standalone != "" && r.modules.ModuleExists(mapping.Standalone) {
		return mapping.Standalone, true
	}
	if r.modules.ModuleExists(base) {
		return base, true
	}
	return "", false
}

// Capabilities returns the resolver's capability set.
func (r *Resolver) Capabilities() *CapabilitySet {
	return r.capabilities
}

// Modules returns the resolver's module registry.
func (r *Resolver) Modules() ModuleRegistry {
	return r.modules
}
