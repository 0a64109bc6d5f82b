package compliance

import "fmt"

// Requirement keys for the core OAuth 2.1 rules.
const (
	RulePKCEEnabled          = "pkce_enabled"
	RulePKCEEnforcement      = "pkce_enforcement"
	RulePKCES256             = "pkce_s256"
	RulePKCEPlainDisabled    = "pkce_plain_disabled"
	RuleImplicitDisabled     = "implicit_grant_disabled"
	RuleCustomURISchemes     = "native_custom_uri_schemes"
	RuleLoopbackRedirects    = "native_loopback_redirects"
	RuleExactRedirectMatch   = "exact_redirect_uri_matching"
	RuleHTTPSEnforcement     = "https_enforcement"
	RuleFragmentValidation   = "redirect_uri_fragment_validation"
	RuleServiceError         = "service_error"
)

// Requirement keys for the server metadata rules.
const (
	RuleMetadataModule    = "metadata_module_enabled"
	RuleMetadataEndpoint  = "metadata_endpoint"
	RulePKCEAdvertised    = "pkce_methods_advertised"
)

// Requirement keys for the best practice rules.
const (
	RuleNativeAppsModule     = "native_apps_module_enabled"
	RuleWebViewDetection     = "webview_detection"
	RuleNativeEnforcement    = "native_security_enforcement"
	RuleNativeEnhancedPKCE   = "native_enhanced_pkce"
	RuleMetadataRevocation   = "metadata_revocation_endpoint"
	RuleMetadataIntrospect   = "metadata_introspection_endpoint"
	RuleMetadataRegistration = "metadata_registration_endpoint"
	RuleMetadataServiceDocs  = "metadata_service_documentation"
	RuleMetadataPolicyURI    = "metadata_op_policy_uri"
	RuleMetadataTosURI       = "metadata_op_tos_uri"
	RuleMetadataUILocales    = "metadata_ui_locales"
	RuleMetadataClaims       = "metadata_additional_claims"
	RuleMetadataAlgorithms   = "metadata_signing_algorithms"
	RuleAccessTokenLifetime  = "access_token_lifetime"
	RuleRefreshTokenLifetime = "refresh_token_lifetime"
)

// ruleText holds the static, human-readable side of one rule: title,
// description, per-status messages, and remediation guidance. Keeping the
// text separate from the rule predicates keeps both independently testable.
type ruleText struct {
	Title       string
	Description string
	Messages    map[Status]string
	Remediation string
}

// message resolves the status-specific message, formatting any verbs with
// the given arguments. Falls back to the status name when no message is
// registered, so a missing table entry degrades instead of hiding a result.
func (t ruleText) message(status Status, args ...any) string {
	msg, ok := t.Messages[status]
	if !ok {
		return string(status)
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// ruleTexts maps requirement keys to their static text.
var ruleTexts = map[string]ruleText{
	RulePKCEEnabled: {
		Title:       "PKCE support enabled",
		Description: "Proof Key for Code Exchange (RFC 7636) protects authorization codes from interception and is mandatory in OAuth 2.1.",
		Messages: map[Status]string{
			StatusCompliant:    "PKCE module is enabled.",
			StatusNonCompliant: "No PKCE module is enabled.",
		},
		Remediation: "Enable the PKCE feature module.",
	},
	RulePKCEEnforcement: {
		Title:       "PKCE enforced for all clients",
		Description: "OAuth 2.1 requires PKCE on every authorization code flow, not only for public clients.",
		Messages: map[Status]string{
			StatusCompliant:    "PKCE enforcement is set to mandatory.",
			StatusNonCompliant: "PKCE enforcement is %q, expected \"mandatory\".",
		},
		Remediation: "Set the PKCE enforcement setting to \"mandatory\".",
	},
	RulePKCES256: {
		Title:       "S256 challenge method enabled",
		Description: "The S256 code challenge method is the only method OAuth 2.1 recommends.",
		Messages: map[Status]string{
			StatusCompliant:    "S256 challenge method is enabled.",
			StatusNonCompliant: "S256 challenge method is disabled.",
		},
		Remediation: "Enable the S256 code challenge method in the PKCE settings.",
	},
	RulePKCEPlainDisabled: {
		Title:       "Plain challenge method disabled",
		Description: "The plain code challenge method offers no protection against code interception and is deprecated in OAuth 2.1.",
		Messages: map[Status]string{
			StatusCompliant: "Plain challenge method is disabled.",
			StatusWarning:   "Plain challenge method is enabled; it provides no interception protection.",
		},
		Remediation: "Disable the plain code challenge method.",
	},
	RuleImplicitDisabled: {
		Title:       "Implicit grant disabled",
		Description: "The implicit grant leaks tokens through the URL fragment and is removed in OAuth 2.1.",
		Messages: map[Status]string{
			StatusCompliant:    "Implicit grant is disabled.",
			StatusNonCompliant: "Implicit grant is enabled.",
		},
		Remediation: "Disable the implicit grant in the server settings.",
	},
	RuleCustomURISchemes: {
		Title:       "Custom URI schemes for native apps",
		Description: "Native apps rely on private-use URI scheme redirects (RFC 8252 Section 7.1).",
		Messages: map[Status]string{
			StatusCompliant:    "Custom URI scheme redirects are allowed (%q).",
			StatusNonCompliant: "Custom URI scheme redirects are %q, expected \"native\" or \"auto-detect\".",
		},
		Remediation: "Allow custom URI schemes for native applications in the native apps settings.",
	},
	RuleLoopbackRedirects: {
		Title:       "Loopback redirects for native apps",
		Description: "Native apps use loopback interface redirects (RFC 8252 Section 7.3).",
		Messages: map[Status]string{
			StatusCompliant:    "Loopback redirects are allowed (%q).",
			StatusNonCompliant: "Loopback redirects are %q, expected \"native\" or \"auto-detect\".",
		},
		Remediation: "Allow loopback interface redirects for native applications in the native apps settings.",
	},
	RuleExactRedirectMatch: {
		Title:       "Exact redirect URI matching",
		Description: "OAuth 2.1 requires redirect URIs to be compared with exact string matching.",
		Messages: map[Status]string{
			StatusCompliant:    "Exact redirect URI matching is enabled.",
			StatusNonCompliant: "Exact redirect URI matching is disabled.",
		},
		Remediation: "Enable exact redirect URI matching in the native apps settings.",
	},
	RuleHTTPSEnforcement: {
		Title:       "HTTPS enforcement",
		Description: "All OAuth endpoints must be served over HTTPS; plain HTTP is only acceptable on the loopback interface.",
		Messages: map[Status]string{
			StatusCompliant:    "Requests are served over HTTPS.",
			StatusNonCompliant: "Request served over plain HTTP on non-loopback host %q.",
		},
		Remediation: "Serve the authorization server exclusively over HTTPS.",
	},
	RuleFragmentValidation: {
		Title:       "Redirect URI fragment validation",
		Description: "Redirect URIs must not contain fragment components; validation is performed during client registration and redirect handling.",
		Messages: map[Status]string{
			StatusCompliant: "Redirect URI fragments are rejected during registration and authorization.",
		},
	},
	RuleServiceError: {
		Title:       "Compliance service error",
		Description: "The compliance evaluation could not be completed.",
		Messages: map[Status]string{
			StatusNonCompliant: "The compliance evaluation aborted unexpectedly.",
		},
		Remediation: "Check the server logs for details.",
	},

	RuleMetadataModule: {
		Title:       "Server metadata support enabled",
		Description: "Authorization server metadata (RFC 8414) lets clients discover endpoints and capabilities.",
		Messages: map[Status]string{
			StatusCompliant:    "Server metadata module is enabled.",
			StatusNonCompliant: "No server metadata module is enabled.",
		},
		Remediation: "Enable the server metadata feature module.",
	},
	RuleMetadataEndpoint: {
		Title:       "Metadata endpoint reachable",
		Description: "The discovery document must be served at a well-known location.",
		Messages: map[Status]string{
			StatusCompliant:    "Metadata endpoint is registered at %s.",
			StatusNonCompliant: "Metadata endpoint route is not registered.",
		},
		Remediation: "Register the well-known metadata route.",
	},
	RulePKCEAdvertised: {
		Title:       "PKCE challenge methods advertised",
		Description: "The discovery document must advertise at least one code challenge method.",
		Messages: map[Status]string{
			StatusCompliant:    "At least one PKCE challenge method is advertised.",
			StatusNonCompliant: "No PKCE challenge methods are advertised.",
		},
		Remediation: "Enable at least the S256 code challenge method.",
	},

	RuleNativeAppsModule: {
		Title:       "Native apps support enabled",
		Description: "Native app security (RFC 8252) hardens flows initiated from mobile and desktop applications.",
		Messages: map[Status]string{
			StatusCompliant:   "Native apps module is enabled.",
			StatusRecommended: "No native apps module is enabled.",
		},
		Remediation: "Enable the native apps feature module.",
	},
	RuleWebViewDetection: {
		Title:       "Embedded WebView detection",
		Description: "Embedded WebViews undermine the security of native app flows and should be detected.",
		Messages: map[Status]string{
			StatusCompliant:   "WebView detection is active (%q).",
			StatusRecommended: "WebView detection is turned off.",
		},
		Remediation: "Set WebView detection to \"warn\" or \"block\".",
	},
	RuleNativeEnforcement: {
		Title:       "Native security enforcement",
		Description: "Enforcing native app security policies blocks non-conforming authorization attempts.",
		Messages: map[Status]string{
			StatusCompliant:   "Native security enforcement is enabled.",
			StatusRecommended: "Native security enforcement is disabled.",
		},
		Remediation: "Enable native security enforcement in the native apps settings.",
	},
	RuleNativeEnhancedPKCE: {
		Title:       "Enhanced PKCE for native apps",
		Description: "Stricter PKCE requirements for native clients reduce the blast radius of compromised devices.",
		Messages: map[Status]string{
			StatusCompliant:   "Enhanced PKCE for native apps is enabled.",
			StatusRecommended: "Enhanced PKCE for native apps is disabled.",
		},
		Remediation: "Enable enhanced PKCE in the native apps settings.",
	},
	RuleMetadataRevocation: {
		Title:       "Revocation endpoint advertised",
		Description: "Advertising the token revocation endpoint (RFC 7009) lets clients invalidate tokens proactively.",
		Messages: map[Status]string{
			StatusCompliant:   "Revocation endpoint is advertised.",
			StatusRecommended: "Revocation endpoint is not advertised.",
		},
		Remediation: "Configure the revocation endpoint in the metadata settings.",
	},
	RuleMetadataIntrospect: {
		Title:       "Introspection endpoint advertised",
		Description: "Advertising the token introspection endpoint (RFC 7662) lets resource servers validate tokens.",
		Messages: map[Status]string{
			StatusCompliant:   "Introspection endpoint is advertised.",
			StatusRecommended: "Introspection endpoint is not advertised.",
		},
		Remediation: "Configure the introspection endpoint in the metadata settings.",
	},
	RuleMetadataRegistration: {
		Title:       "Registration endpoint advertised",
		Description: "Advertising the dynamic client registration endpoint (RFC 7591) enables programmatic client onboarding.",
		Messages: map[Status]string{
			StatusCompliant:   "Registration endpoint is advertised.",
			StatusRecommended: "Registration endpoint is not advertised.",
		},
		Remediation: "Configure the registration endpoint in the metadata settings.",
	},
	RuleMetadataServiceDocs: {
		Title:       "Service documentation advertised",
		Description: "A service documentation URL helps client developers integrate correctly.",
		Messages: map[Status]string{
			StatusCompliant:   "Service documentation URL is advertised.",
			StatusRecommended: "Service documentation URL is not configured.",
		},
		Remediation: "Configure the service documentation URL in the metadata settings.",
	},
	RuleMetadataPolicyURI: {
		Title:       "Policy URI advertised",
		Description: "The op_policy_uri field documents how client data is used.",
		Messages: map[Status]string{
			StatusCompliant:   "Policy URI is advertised.",
			StatusRecommended: "Policy URI is not configured.",
		},
		Remediation: "Configure op_policy_uri in the metadata settings.",
	},
	RuleMetadataTosURI: {
		Title:       "Terms of service URI advertised",
		Description: "The op_tos_uri field points clients at the operator's terms of service.",
		Messages: map[Status]string{
			StatusCompliant:   "Terms of service URI is advertised.",
			StatusRecommended: "Terms of service URI is not configured.",
		},
		Remediation: "Configure op_tos_uri in the metadata settings.",
	},
	RuleMetadataUILocales: {
		Title:       "UI locales advertised",
		Description: "Advertising ui_locales_supported lets clients request localized authorization pages.",
		Messages: map[Status]string{
			StatusCompliant:   "Supported UI locales are advertised.",
			StatusRecommended: "Supported UI locales are not configured.",
		},
		Remediation: "Configure ui_locales_supported in the metadata settings.",
	},
	RuleMetadataClaims: {
		Title:       "Additional claims advertised",
		Description: "Advertising additional supported claims improves interoperability with OpenID Connect clients.",
		Messages: map[Status]string{
			StatusCompliant:   "Additional supported claims are advertised.",
			StatusRecommended: "Additional supported claims are not configured.",
		},
		Remediation: "Configure additional_claims_supported in the metadata settings.",
	},
	RuleMetadataAlgorithms: {
		Title:       "Additional signing algorithms advertised",
		Description: "Advertising additional signing algorithms lets clients negotiate stronger token signatures.",
		Messages: map[Status]string{
			StatusCompliant:   "Additional signing algorithms are advertised.",
			StatusRecommended: "Additional signing algorithms are not configured.",
		},
		Remediation: "Configure additional_signing_algorithms in the metadata settings.",
	},
	RuleAccessTokenLifetime: {
		Title:       "Access token lifetime bounded",
		Description: "Short-lived access tokens limit the window of abuse after a leak.",
		Messages: map[Status]string{
			StatusCompliant:   "Access token lifetime is %d seconds (within the %d second recommendation).",
			StatusRecommended: "Access token lifetime is not within the recommended maximum of %d seconds.",
		},
		Remediation: "Reduce the access token lifetime in the server settings.",
	},
	RuleRefreshTokenLifetime: {
		Title:       "Refresh token lifetime bounded",
		Description: "Bounded refresh token lifetimes force periodic re-authentication.",
		Messages: map[Status]string{
			StatusCompliant:   "Refresh token lifetime is %d seconds (within the %d second recommendation).",
			StatusRecommended: "Refresh token lifetime is not within the recommended maximum of %d seconds.",
		},
		Remediation: "Reduce the refresh token lifetime in the server settings.",
	},
}

// newRequirement builds a Requirement from the static rule text.
// Remediation is attached only to non-passing requirements.
func newRequirement(key string, level Level, status Status, args ...any) Requirement {
	text := ruleTexts[key]

	req := Requirement{
		Key:         key,
		Title:       text.Title,
		Description: text.Description,
		Level:       level,
		Status:      status,
		Message:     text.message(status, args...),
	}
	if !status.Passed() {
		req.Remediation = text.Remediation
	}
	return req
}
