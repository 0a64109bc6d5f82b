package compliance

import (
	"context"

	"github.com/giantswarm/oauth-compliance/configstore"
	"github.com/giantswarm/oauth-compliance/registry"
)

// metadataFieldRules maps best-practice requirement keys to the metadata
// setting they check. String fields pass when non-empty; list fields pass
// when they hold at least one entry.
var metadataFieldRules = []struct {
	key   string
	field string
	list  bool
}{
	{RuleMetadataRevocation, "revocation_endpoint", false},
	{RuleMetadataIntrospect, "introspection_endpoint", false},
	{RuleMetadataRegistration, "registration_endpoint", false},
	{RuleMetadataServiceDocs, "service_documentation", false},
	{RuleMetadataPolicyURI, "op_policy_uri", false},
	{RuleMetadataTosURI, "op_tos_uri", false},
	{RuleMetadataUILocales, "ui_locales_supported", true},
	{RuleMetadataClaims, "additional_claims_supported", true},
	{RuleMetadataAlgorithms, "additional_signing_algorithms", true},
}

// evaluateBestPractices runs the recommended best-practice rules.
// A best practice that is not adopted yields StatusRecommended, never a
// failure status: these rules are non-blocking by definition.
func (s *Service) evaluateBestPractices(ctx context.Context) map[string]Requirement {
	native := s.accessor.ConfigWithFallback(ctx, registry.CapabilityNativeApps, "settings")
	metadata := s.accessor.ConfigWithFallback(ctx, registry.CapabilityServerMetadata, "settings")
	core := s.accessor.Config(ctx, s.config.CoreSettingsName)

	out := make(map[string]Requirement)
	add := func(r Requirement) { out[r.Key] = r }

	// Native apps module present.
	if s.resolver.IsEnabled(registry.CapabilityNativeApps) {
		add(newRequirement(RuleNativeAppsModule, LevelRecommended, StatusCompliant))
	} else {
		add(newRequirement(RuleNativeAppsModule, LevelRecommended, StatusRecommended))
	}

	// WebView detection policy.
	webview := "off"
	if native != nil {
		webview = native.GetString("webview_detection", "off")
	}
	if webview != "off" {
		add(newRequirement(RuleWebViewDetection, LevelRecommended, StatusCompliant, webview))
	} else {
		add(newRequirement(RuleWebViewDetection, LevelRecommended, StatusRecommended))
	}

	// Native security enforcement.
	if native != nil && native.GetBool("enforce", false) {
		add(newRequirement(RuleNativeEnforcement, LevelRecommended, StatusCompliant))
	} else {
		add(newRequirement(RuleNativeEnforcement, LevelRecommended, StatusRecommended))
	}

	// Enhanced PKCE for native apps.
	if native != nil && native.GetBool("enhanced_pkce", false) {
		add(newRequirement(RuleNativeEnhancedPKCE, LevelRecommended, StatusCompliant))
	} else {
		add(newRequirement(RuleNativeEnhancedPKCE, LevelRecommended, StatusRecommended))
	}

	// Optional metadata fields.
	for _, rule := range metadataFieldRules {
		add(evaluateMetadataField(metadata, rule.key, rule.field, rule.list))
	}

	// Token lifetime bounds.
	add(evaluateLifetime(core, RuleAccessTokenLifetime, "access_token_expiration", s.config.MaxAccessTokenTTL))
	add(evaluateLifetime(core, RuleRefreshTokenLifetime, "refresh_token_expiration", s.config.MaxRefreshTokenTTL))

	return out
}

// evaluateMetadataField checks one optional discovery document field.
func evaluateMetadataField(metadata *configstore.Record, key, field string, list bool) Requirement {
	present := false
	if metadata != nil {
		if list {
			present = len(metadata.GetStringSlice(field)) > 0
		} else {
			present = metadata.GetString(field, "") != ""
		}
	}
	if present {
		return newRequirement(key, LevelRecommended, StatusCompliant)
	}
	return newRequirement(key, LevelRecommended, StatusRecommended)
}

// evaluateLifetime checks a token lifetime against its recommended upper
// bound. Zero or missing values count as unbounded.
func evaluateLifetime(core *configstore.Record, key, field string, max int64) Requirement {
	var ttl int64
	if core != nil {
		ttl = core.GetInt64(field, 0)
	}
	if ttl > 0 && ttl <= max {
		return newRequirement(key, LevelRecommended, StatusCompliant, ttl, max)
	}
	return newRequirement(key, LevelRecommended, StatusRecommended, max)
}
