package compliance

import (
	"context"

	"github.com/giantswarm/oauth-compliance/registry"
)

// evaluateServerMetadata runs the RFC 8414 discovery rules.
func (s *Service) evaluateServerMetadata(ctx context.Context) map[string]Requirement {
	out := make(map[string]Requirement)
	add := func(r Requirement) { out[r.Key] = r }

	// Metadata module present.
	if s.resolver.IsEnabled(registry.CapabilityServerMetadata) {
		add(newRequirement(RuleMetadataModule, LevelRequired, StatusCompliant))
	} else {
		add(newRequirement(RuleMetadataModule, LevelRequired, StatusNonCompliant))
	}

	// Discovery endpoint resolvable. A missing route table and a missing
	// route are the same outcome: clients cannot discover the server.
	add(s.evaluateMetadataEndpoint())

	// At least one PKCE challenge method advertised. The advertised set is
	// derived from the PKCE settings, so the rule reads those.
	pkce := s.accessor.ConfigWithFallback(ctx, registry.CapabilityPKCE, "settings")
	advertised := pkce != nil && (pkce.GetBool("s256", true) || pkce.GetBool("plain", false))
	if advertised {
		add(newRequirement(RulePKCEAdvertised, LevelRequired, StatusCompliant))
	} else {
		add(newRequirement(RulePKCEAdvertised, LevelRequired, StatusNonCompliant))
	}

	return out
}

// evaluateMetadataEndpoint confirms the well-known route is registered.
// Route lookup failure is an ordinary value, converted into a non-compliant
// requirement rather than propagated.
func (s *Service) evaluateMetadataEndpoint() Requirement {
	if s.config.Routes == nil {
		return newRequirement(RuleMetadataEndpoint, LevelRequired, StatusNonCompliant)
	}

	route, err := s.config.Routes.RouteByName(s.config.MetadataRouteName)
	if err != nil {
		s.logger.Debug("Metadata route lookup failed",
			"route", s.config.MetadataRouteName,
			"error", err)
		return newRequirement(RuleMetadataEndpoint, LevelRequired, StatusNonCompliant)
	}
	return newRequirement(RuleMetadataEndpoint, LevelRequired, StatusCompliant, route.Path)
}
