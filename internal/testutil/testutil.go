// Package testutil provides testing utilities and helpers for the
// oauth-compliance library.
package testutil

import (
	"net/http"
	"net/http/httptest"
)

// NewMockHTTPServer creates a test HTTP server with the given handler
func NewMockHTTPServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

// NewMockHTTPSServer creates a test HTTPS server with the given handler
func NewMockHTTPSServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewTLSServer(handler)
}

// FullyCompliantRecords returns configuration records describing a deployment
// that satisfies every compliance rule. Tests copy and mutate the result to
// exercise individual rule branches.
func FullyCompliantRecords() map[string]map[string]any {
	return map[string]map[string]any{
		"oauth_server.settings": {
			"use_implicit":             false,
			"access_token_expiration":  3600,
			"refresh_token_expiration": 1209600,
		},
		"oauth_server_pkce.settings": {
			"enforcement": "mandatory",
			"s256":        true,
			"plain":       false,
		},
		"oauth_server_native_apps.settings": {
			"webview_detection":    "block",
			"enforce":              true,
			"enhanced_pkce":        true,
			"custom_uri_schemes":   "native",
			"loopback_redirects":   "native",
			"exact_redirect_match": true,
		},
		"oauth_server_metadata.settings": {
			"revocation_endpoint":           "https://auth.example.com/oauth/revoke",
			"introspection_endpoint":        "https://auth.example.com/oauth/introspect",
			"registration_endpoint":         "https://auth.example.com/oauth/register",
			"service_documentation":         "https://auth.example.com/docs",
			"op_policy_uri":                 "https://auth.example.com/policy",
			"op_tos_uri":                    "https://auth.example.com/tos",
			"ui_locales_supported":          []any{"en", "de"},
			"additional_claims_supported":   []any{"email"},
			"additional_signing_algorithms": []any{"ES256"},
		},
	}
}

// FullyCompliantModules returns the module names enabled in a fully
// compliant deployment.
func FullyCompliantModules() []string {
	return []string{
		"oauth_server",
		"oauth_server_pkce",
		"oauth_server_metadata",
		"oauth_server_native_apps",
	}
}
