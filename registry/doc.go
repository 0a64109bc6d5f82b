// Package registry resolves OAuth capability names to the feature modules
// that provide them.
//
// A capability (PKCE support, server metadata, native-app security, ...) can
// be installed under more than one identity: bundled with the core server
// distribution, or as a standalone extension. The CapabilitySet records the
// possible identities for each capability; the Resolver decides, against a
// ModuleRegistry of installed modules, which identity is active.
//
// Resolution priority is fixed: bundled identity first, then standalone,
// then the bare capability name itself. When both the bundled and standalone
// identities are enabled, the bundled one wins.
package registry
