package registry

// Capability base names for the OAuth 2.1 feature set.
const (
	CapabilityPKCE               = "pkce"
	CapabilityServerMetadata     = "server_metadata"
	CapabilityNativeApps         = "native_apps"
	CapabilityClientRegistration = "client_registration"
	CapabilityDeviceFlow         = "device_flow"
	CapabilityTokenRevocation    = "token_revocation"
	CapabilityTokenIntrospection = "token_introspection"
)

// CapabilityMapping records the module identities that can provide one
// capability. A capability is provided either by a module bundled with the
// core server distribution or by a standalone extension; both identities are
// fixed at build time.
type CapabilityMapping struct {
	// Base is the capability name rules refer to. Unique within a set.
	Base string

	// Bundled is the module identity when shipped with the core distribution.
	Bundled string

	// Standalone is the module identity when installed as a separate extension.
	Standalone string
}

// CapabilitySet is an immutable lookup table from capability base names to
// their possible module identities. Construct once at initialization and
// share by reference; the set never changes after construction.
type CapabilitySet struct {
	mappings map[string]CapabilityMapping
}

// NewCapabilitySet builds a set from the given mappings.
// Later mappings with a duplicate Base replace earlier ones.
func NewCapabilitySet(mappings ...CapabilityMapping) *CapabilitySet {
	set := &CapabilitySet{mappings: make(map[string]CapabilityMapping, len(mappings))}
	for _, m := range mappings {
		set.mappings[m.Base] = m
	}
	return set
}

// DefaultCapabilities returns the standard OAuth 2.1 capability table.
func DefaultCapabilities() *CapabilitySet {
	return NewCapabilitySet(
		CapabilityMapping{Base: CapabilityPKCE, Bundled: "oauth_server_pkce", Standalone: "oauth_pkce"},
		CapabilityMapping{Base: CapabilityServerMetadata, Bundled: "oauth_server_metadata", Standalone: "oauth_metadata"},
		CapabilityMapping{Base: CapabilityNativeApps, Bundled: "oauth_server_native_apps", Standalone: "oauth_native_apps"},
		CapabilityMapping{Base: CapabilityClientRegistration, Bundled: "oauth_server_client_registration", Standalone: "oauth_client_registration"},
		CapabilityMapping{Base: CapabilityDeviceFlow, Bundled: "oauth_server_device_flow", Standalone: "oauth_device_flow"},
		CapabilityMapping{Base: CapabilityTokenRevocation, Bundled: "oauth_server_revocation", Standalone: "oauth_revocation"},
		CapabilityMapping{Base: CapabilityTokenIntrospection, Bundled: "oauth_server_introspection", Standalone: "oauth_introspection"},
	)
}

// Resolve looks up the mapping for a capability base name.
func (s *CapabilitySet) Resolve(base string) (CapabilityMapping, bool) {
	m, ok := s.mappings[base]
	return m, ok
}

// Len returns the number of registered capabilities.
func (s *CapabilitySet) Len() int {
	return len(s.mappings)
}
