package compliance

import (
	"fmt"
	"log/slog"

	"github.com/giantswarm/oauth-compliance/configstore"
	"github.com/giantswarm/oauth-compliance/instrumentation"
	"github.com/giantswarm/oauth-compliance/registry"
	"github.com/giantswarm/oauth-compliance/security"
)

// Default configuration values.
const (
	// DefaultCoreSettingsName is the configuration record holding the core
	// server settings (grant toggles, token lifetimes).
	DefaultCoreSettingsName = "oauth_server.settings"

	// DefaultMetadataRouteName is the route name of the RFC 8414 discovery
	// endpoint.
	DefaultMetadataRouteName = "oauth_server.well_known"

	// DefaultMaxAccessTokenTTL is the recommended upper bound for access
	// token lifetimes, in seconds (1 hour).
	DefaultMaxAccessTokenTTL = 3600

	// DefaultMaxRefreshTokenTTL is the recommended upper bound for refresh
	// token lifetimes, in seconds (30 days).
	DefaultMaxRefreshTokenTTL = 2592000

	// DefaultFullyCompliantThreshold is the recommended-tier percentage at or
	// above which a deployment with perfect mandatory and required scores is
	// classified fully_compliant rather than mostly_compliant.
	DefaultFullyCompliantThreshold = 80.0
)

// Config holds the compliance service configuration.
// Modules and Store are required; everything else has working defaults.
type Config struct {
	// Capabilities maps capability names to module identities.
	// Defaults to registry.DefaultCapabilities().
	Capabilities *registry.CapabilitySet

	// Modules reports which feature modules are enabled (required).
	Modules registry.ModuleRegistry

	// Store provides read access to configuration records (required).
	Store configstore.Store

	// Routes confirms discovery endpoint availability.
	// When nil, the metadata endpoint rule reports non_compliant.
	Routes RouteTable

	// CoreSettingsName is the record holding core server settings.
	// Default: DefaultCoreSettingsName.
	CoreSettingsName string

	// MetadataRouteName is the discovery endpoint's route name.
	// Default: DefaultMetadataRouteName.
	MetadataRouteName string

	// MaxAccessTokenTTL is the recommended access token lifetime cap in
	// seconds. Default: DefaultMaxAccessTokenTTL.
	MaxAccessTokenTTL int64

	// MaxRefreshTokenTTL is the recommended refresh token lifetime cap in
	// seconds. Default: DefaultMaxRefreshTokenTTL.
	MaxRefreshTokenTTL int64

	// FullyCompliantThreshold is the recommended-tier percentage required
	// for the fully_compliant classification.
	// Default: DefaultFullyCompliantThreshold.
	FullyCompliantThreshold float64

	// Logger for structured logging (optional, uses slog.Default if not provided).
	Logger *slog.Logger

	// Instrumentation provides OpenTelemetry metrics and tracing (optional).
	Instrumentation *instrumentation.Instrumentation

	// Auditor logs evaluation and dashboard access events (optional).
	Auditor *security.Auditor
}

// validate checks required collaborators and applies defaults in place.
func (c *Config) validate() error {
	if c.Modules == nil {
		return fmt.Errorf("module registry is required")
	}
	if c.Store == nil {
		return fmt.Errorf("configuration store is required")
	}

	if c.Capabilities == nil {
		c.Capabilities = registry.DefaultCapabilities()
	}
	if c.CoreSettingsName == "" {
		c.CoreSettingsName = DefaultCoreSettingsName
	}
	if c.MetadataRouteName == "" {
		c.MetadataRouteName = DefaultMetadataRouteName
	}
	if c.MaxAccessTokenTTL == 0 {
		c.MaxAccessTokenTTL = DefaultMaxAccessTokenTTL
	}
	if c.MaxRefreshTokenTTL == 0 {
		c.MaxRefreshTokenTTL = DefaultMaxRefreshTokenTTL
	}
	if c.FullyCompliantThreshold == 0 {
		c.FullyCompliantThreshold = DefaultFullyCompliantThreshold
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}
