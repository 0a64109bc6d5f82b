package security

import (
	"net/http"
	"net/url"
)

// SetSecurityHeaders sets comprehensive security headers on HTTP responses
// These headers protect against various web vulnerabilities
func SetSecurityHeaders(w http.ResponseWriter, serverURL string) {
	// X-Frame-Options: Prevent clickjacking attacks
	w.Header().Set("X-Frame-Options", "DENY")

	// X-Content-Type-Options: Prevent MIME type sniffing
	w.Header().Set("X-Content-Type-Options", "nosniff")

	// Content-Security-Policy: Restrict resource loading
	// Strict policy for machine-readable endpoints (no scripts, no external resources)
	w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

	// Referrer-Policy: Don't leak referrer information
	w.Header().Set("Referrer-Policy", "no-referrer")

	// Strict-Transport-Security: Enforce HTTPS (only if server uses HTTPS)
	if parsed, err := url.Parse(serverURL); err == nil && parsed.Scheme == "https" {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	}

	// Cache-Control: compliance results reflect live configuration and must
	// not be served stale
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
	w.Header().Set("Pragma", "no-cache")
}

// SetDashboardSecurityHeaders sets security headers for the HTML dashboard.
// The dashboard template uses inline styles, so the CSP allows 'unsafe-inline'
// for style-src only; scripts remain fully blocked.
func SetDashboardSecurityHeaders(w http.ResponseWriter, serverURL string) {
	SetSecurityHeaders(w, serverURL)
	w.Header().Set("Content-Security-Policy",
		"default-src 'none'; style-src 'unsafe-inline'; frame-ancestors 'none'")
}
