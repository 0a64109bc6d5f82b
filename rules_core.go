package compliance

import (
	"context"

	"github.com/giantswarm/oauth-compliance/internal/util"
	"github.com/giantswarm/oauth-compliance/registry"
)

// uriRedirectAllowed are the setting values under which a redirect class
// (custom URI schemes, loopback interfaces) is considered allowed.
var uriRedirectAllowed = map[string]bool{
	"native":      true,
	"auto-detect": true,
}

// evaluateCoreRequirements runs the mandatory OAuth 2.1 rules.
// Every rule classifies missing configuration as an evaluable state; none of
// them returns an error.
func (s *Service) evaluateCoreRequirements(ctx context.Context, req RequestInfo) map[string]Requirement {
	pkce := s.accessor.ConfigWithFallback(ctx, registry.CapabilityPKCE, "settings")
	native := s.accessor.ConfigWithFallback(ctx, registry.CapabilityNativeApps, "settings")
	core := s.accessor.Config(ctx, s.config.CoreSettingsName)

	out := make(map[string]Requirement)
	add := func(r Requirement) { out[r.Key] = r }

	// PKCE module present.
	if s.resolver.IsEnabled(registry.CapabilityPKCE) {
		add(newRequirement(RulePKCEEnabled, LevelMandatory, StatusCompliant))
	} else {
		add(newRequirement(RulePKCEEnabled, LevelMandatory, StatusNonCompliant))
	}

	// PKCE enforcement is mandatory for all clients.
	enforcement := ""
	if pkce != nil {
		enforcement = pkce.GetString("enforcement", "")
	}
	if enforcement == "mandatory" {
		add(newRequirement(RulePKCEEnforcement, LevelMandatory, StatusCompliant))
	} else {
		add(newRequirement(RulePKCEEnforcement, LevelMandatory, StatusNonCompliant, enforcement))
	}

	// S256 challenge method. Defaults to enabled when the module is
	// configured, since that is the module's shipped default.
	if pkce != nil && pkce.GetBool("s256", true) {
		add(newRequirement(RulePKCES256, LevelMandatory, StatusCompliant))
	} else {
		add(newRequirement(RulePKCES256, LevelMandatory, StatusNonCompliant))
	}

	// Plain challenge method must stay off. Enabled is a warning, not a
	// hard failure: plain PKCE is weak but still better than none.
	if pkce != nil && pkce.GetBool("plain", false) {
		add(newRequirement(RulePKCEPlainDisabled, LevelMandatory, StatusWarning))
	} else {
		add(newRequirement(RulePKCEPlainDisabled, LevelMandatory, StatusCompliant))
	}

	// Implicit grant is removed in OAuth 2.1. Absent configuration means the
	// grant is off, which is the shipped default.
	implicit := false
	if core != nil {
		implicit = core.GetBool("use_implicit", false)
	}
	if implicit {
		add(newRequirement(RuleImplicitDisabled, LevelMandatory, StatusNonCompliant))
	} else {
		add(newRequirement(RuleImplicitDisabled, LevelMandatory, StatusCompliant))
	}

	// Custom URI scheme redirects for native apps.
	schemes := ""
	if native != nil {
		schemes = native.GetString("custom_uri_schemes", "off")
	}
	if uriRedirectAllowed[schemes] {
		add(newRequirement(RuleCustomURISchemes, LevelMandatory, StatusCompliant, schemes))
	} else {
		add(newRequirement(RuleCustomURISchemes, LevelMandatory, StatusNonCompliant, schemes))
	}

	// Loopback interface redirects for native apps.
	loopback := ""
	if native != nil {
		loopback = native.GetString("loopback_redirects", "off")
	}
	if uriRedirectAllowed[loopback] {
		add(newRequirement(RuleLoopbackRedirects, LevelMandatory, StatusCompliant, loopback))
	} else {
		add(newRequirement(RuleLoopbackRedirects, LevelMandatory, StatusNonCompliant, loopback))
	}

	// Exact redirect URI matching.
	if native != nil && native.GetBool("exact_redirect_match", false) {
		add(newRequirement(RuleExactRedirectMatch, LevelMandatory, StatusCompliant))
	} else {
		add(newRequirement(RuleExactRedirectMatch, LevelMandatory, StatusNonCompliant))
	}

	add(s.evaluateHTTPSEnforcement(req))

	// Fragment validation is implemented in redirect handling and client
	// registration, outside this evaluator's reach; reported as compliant.
	add(newRequirement(RuleFragmentValidation, LevelMandatory, StatusCompliant))

	return out
}

// evaluateHTTPSEnforcement is the only rule reading request state: plain
// HTTP is acceptable on the loopback interface (RFC 8252 Section 8.3) and
// nowhere else.
func (s *Service) evaluateHTTPSEnforcement(req RequestInfo) Requirement {
	if req.HTTPS {
		return newRequirement(RuleHTTPSEnforcement, LevelMandatory, StatusCompliant)
	}
	if util.IsLoopbackHost(req.Host) {
		return newRequirement(RuleHTTPSEnforcement, LevelMandatory, StatusCompliant)
	}
	return newRequirement(RuleHTTPSEnforcement, LevelMandatory, StatusNonCompliant, req.Host)
}
