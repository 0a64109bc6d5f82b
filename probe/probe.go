// Package probe verifies a deployed authorization server's published
// RFC 8414 metadata document against OAuth 2.1 expectations. Where the
// compliance service inspects stored configuration, the probe checks what the
// server actually serves: it fetches the well-known document, validates its
// claims, and constructs a PKCE authorization URL an OAuth 2.1 client would
// use against it.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/giantswarm/oauth-compliance/internal/util"
)

// WellKnownPath is the RFC 8414 authorization server metadata path.
const WellKnownPath = "/.well-known/oauth-authorization-server"

// Metadata is the subset of the RFC 8414 authorization server metadata
// document the probe inspects.
type Metadata struct {
	Issuer                        string   `json:"issuer"`
	AuthorizationEndpoint         string   `json:"authorization_endpoint"`
	TokenEndpoint                 string   `json:"token_endpoint"`
	RegistrationEndpoint          string   `json:"registration_endpoint,omitempty"`
	RevocationEndpoint            string   `json:"revocation_endpoint,omitempty"`
	IntrospectionEndpoint         string   `json:"introspection_endpoint,omitempty"`
	ResponseTypesSupported        []string `json:"response_types_supported"`
	GrantTypesSupported           []string `json:"grant_types_supported,omitempty"`
	CodeChallengeMethodsSupported []string `json:"code_challenge_methods_supported,omitempty"`
}

// Check is one verified property of the published metadata.
type Check struct {
	// Key identifies the check.
	Key string `json:"key"`

	// OK reports whether the check passed.
	OK bool `json:"ok"`

	// Message describes the outcome.
	Message string `json:"message"`
}

// Result is the outcome of probing one server.
type Result struct {
	// Metadata is the fetched document. Nil when the fetch itself failed.
	Metadata *Metadata `json:"metadata,omitempty"`

	// Checks are the individual verification outcomes.
	Checks []Check `json:"checks"`

	// AuthorizationProbeURL is a complete PKCE authorization request URL
	// built against the published endpoints. Empty when the document is
	// missing the endpoints needed to build one.
	AuthorizationProbeURL string `json:"authorization_probe_url,omitempty"`
}

// Passed reports whether every check in the result passed.
func (r *Result) Passed() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Prober fetches and verifies RFC 8414 metadata documents.
// It is safe for concurrent use.
type Prober struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a prober. A nil httpClient uses a default with a 10 second
// timeout; a nil logger uses slog.Default().
func New(httpClient *http.Client, logger *slog.Logger) *Prober {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Probe fetches the metadata document for the given issuer and verifies it.
// A failed fetch is itself a probe outcome, not an error: the returned result
// carries a failing metadata_resolvable check. Errors are reserved for
// invalid input and context cancellation.
func (p *Prober) Probe(ctx context.Context, issuer string) (*Result, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required")
	}
	if _, err := url.Parse(issuer); err != nil {
		return nil, fmt.Errorf("invalid issuer URL: %w", err)
	}

	result := &Result{}

	doc, err := p.fetch(ctx, issuer)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Warn("Metadata probe fetch failed", "issuer", issuer, "error", err)
		result.Checks = append(result.Checks, Check{
			Key:     "metadata_resolvable",
			OK:      false,
			Message: fmt.Sprintf("Metadata document could not be fetched: %v.", err),
		})
		return result, nil
	}

	result.Metadata = doc
	result.Checks = append(result.Checks, Check{
		Key:     "metadata_resolvable",
		OK:      true,
		Message: "Metadata document fetched successfully.",
	})

	result.Checks = append(result.Checks, checkIssuer(issuer, doc))
	result.Checks = append(result.Checks, checkPKCEMethods(doc))
	result.Checks = append(result.Checks, checkImplicitAbsent(doc))
	result.Checks = append(result.Checks, checkEndpointsHTTPS(doc)...)

	if doc.AuthorizationEndpoint != "" {
		probeURL, err := buildAuthorizationProbeURL(doc)
		if err != nil {
			p.logger.Debug("Could not build authorization probe URL",
				"issuer", issuer, "error", err)
		} else {
			result.AuthorizationProbeURL = probeURL
		}
	}

	p.logger.Info("Metadata probe completed",
		"issuer", issuer,
		"passed", result.Passed(),
		"checks", len(result.Checks))

	return result, nil
}

// fetch retrieves and decodes the well-known document.
func (p *Prober) fetch(ctx context.Context, issuer string) (*Metadata, error) {
	metadataURL := strings.TrimSuffix(issuer, "/") + WellKnownPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata endpoint returned status %d", resp.StatusCode)
	}

	var doc Metadata
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode metadata document: %w", err)
	}
	return &doc, nil
}

// checkIssuer verifies the published issuer matches the probed one.
// RFC 8414 section 3.3 makes this comparison mandatory for clients.
func checkIssuer(issuer string, doc *Metadata) Check {
	if util.NormalizeURL(doc.Issuer) == util.NormalizeURL(issuer) {
		return Check{
			Key:     "issuer_match",
			OK:      true,
			Message: "Published issuer matches the probed issuer.",
		}
	}
	return Check{
		Key: "issuer_match",
		OK:  false,
		Message: fmt.Sprintf("Published issuer %q does not match probed issuer %q.",
			doc.Issuer, issuer),
	}
}

// checkPKCEMethods verifies S256 is advertised and plain is not.
func checkPKCEMethods(doc *Metadata) Check {
	methods := doc.CodeChallengeMethodsSupported
	switch {
	case !slices.Contains(methods, "S256"):
		return Check{
			Key:     "pkce_s256_advertised",
			OK:      false,
			Message: "Metadata does not advertise the S256 code challenge method.",
		}
	case slices.Contains(methods, "plain"):
		return Check{
			Key:     "pkce_s256_advertised",
			OK:      false,
			Message: "Metadata advertises the plain code challenge method alongside S256.",
		}
	default:
		return Check{
			Key:     "pkce_s256_advertised",
			OK:      true,
			Message: "Metadata advertises S256 without the plain method.",
		}
	}
}

// checkImplicitAbsent verifies the implicit grant's token response type is
// not advertised.
func checkImplicitAbsent(doc *Metadata) Check {
	for _, rt := range doc.ResponseTypesSupported {
		for _, part := range strings.Fields(rt) {
			if part == "token" {
				return Check{
					Key:     "implicit_absent",
					OK:      false,
					Message: fmt.Sprintf("Metadata advertises response type %q, which enables the implicit grant.", rt),
				}
			}
		}
	}
	return Check{
		Key:     "implicit_absent",
		OK:      true,
		Message: "Metadata does not advertise implicit grant response types.",
	}
}

// checkEndpointsHTTPS verifies every advertised endpoint uses HTTPS.
// Loopback hosts are exempt to allow local development servers.
func checkEndpointsHTTPS(doc *Metadata) []Check {
	endpoints := []struct {
		name string
		url  string
	}{
		{"authorization_endpoint", doc.AuthorizationEndpoint},
		{"token_endpoint", doc.TokenEndpoint},
		{"registration_endpoint", doc.RegistrationEndpoint},
		{"revocation_endpoint", doc.RevocationEndpoint},
		{"introspection_endpoint", doc.IntrospectionEndpoint},
	}

	var checks []Check
	for _, ep := range endpoints {
		if ep.url == "" {
			continue
		}
		checks = append(checks, checkEndpointHTTPS(ep.name, ep.url))
	}
	return checks
}

func checkEndpointHTTPS(name, endpoint string) Check {
	key := name + "_https"

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return Check{
			Key:     key,
			OK:      false,
			Message: fmt.Sprintf("Endpoint %s is not a valid URL: %v.", name, err),
		}
	}
	if parsed.Scheme == "https" || util.IsLoopbackHost(parsed.Host) {
		return Check{
			Key:     key,
			OK:      true,
			Message: fmt.Sprintf("Endpoint %s uses an acceptable transport.", name),
		}
	}
	return Check{
		Key:     key,
		OK:      false,
		Message: fmt.Sprintf("Endpoint %s does not use HTTPS.", name),
	}
}

// buildAuthorizationProbeURL constructs a complete OAuth 2.1 authorization
// request URL with a fresh PKCE challenge against the published endpoints.
// The verifier is discarded; the URL demonstrates what a compliant client
// would send and can be used to exercise the authorization endpoint manually.
func buildAuthorizationProbeURL(doc *Metadata) (string, error) {
	if doc.AuthorizationEndpoint == "" {
		return "", fmt.Errorf("metadata has no authorization endpoint")
	}

	conf := &oauth2.Config{
		ClientID: "compliance-probe",
		Endpoint: oauth2.Endpoint{
			AuthURL:  doc.AuthorizationEndpoint,
			TokenURL: doc.TokenEndpoint,
		},
	}

	verifier := oauth2.GenerateVerifier()
	probeURL := conf.AuthCodeURL("probe", oauth2.S256ChallengeOption(verifier))

	if _, err := url.Parse(probeURL); err != nil {
		return "", fmt.Errorf("built an invalid probe URL: %w", err)
	}
	return probeURL, nil
}
