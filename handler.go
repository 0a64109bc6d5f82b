package compliance

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/giantswarm/oauth-compliance/security"
)

// Default handler paths.
const (
	// DefaultDashboardPath serves the HTML dashboard.
	DefaultDashboardPath = "/admin/compliance"

	// DefaultReportPath serves the report as JSON.
	DefaultReportPath = "/admin/compliance.json"
)

// HandlerConfig holds the dashboard HTTP handler configuration.
type HandlerConfig struct {
	// DashboardPath is where the HTML dashboard is served.
	// Default: DefaultDashboardPath.
	DashboardPath string

	// ReportPath is where the JSON report is served.
	// Default: DefaultReportPath.
	ReportPath string

	// ServerURL is the server's public base URL, used to decide whether to
	// emit HSTS headers.
	ServerURL string

	// TrustProxy enables trusting X-Forwarded-For, X-Real-IP, and
	// X-Forwarded-Proto headers. Only enable behind a trusted reverse proxy.
	TrustProxy bool

	// TrustedProxyCount is the number of trusted proxies in front of this
	// server. Default: 1.
	TrustedProxyCount int

	// RateLimit is requests per second allowed per IP. Zero disables limiting.
	RateLimit int

	// RateBurst is the maximum burst size allowed per IP.
	RateBurst int

	// AccessToken guards the dashboard with a bearer token.
	// The token is bcrypt-hashed at handler construction; the plaintext is
	// not retained. Empty leaves the dashboard unauthenticated.
	AccessToken string

	// AccessTokenHash is a pre-computed bcrypt hash of the access token.
	// When set, it takes precedence over AccessToken and the plaintext never
	// touches this process.
	AccessTokenHash string
}

// Handler serves the compliance dashboard over HTTP. It is GET-only and
// consumes only the Report structure produced by the Service.
type Handler struct {
	service     *Service
	config      HandlerConfig
	logger      *slog.Logger
	rateLimiter *security.RateLimiter
	tokenGuard  *security.AccessTokenGuard
}

// NewHandler creates a dashboard handler for the given service.
func NewHandler(service *Service, config HandlerConfig) (*Handler, error) {
	if service == nil {
		return nil, fmt.Errorf("service is required")
	}

	if config.DashboardPath == "" {
		config.DashboardPath = DefaultDashboardPath
	}
	if config.ReportPath == "" {
		config.ReportPath = DefaultReportPath
	}
	if config.TrustedProxyCount == 0 {
		config.TrustedProxyCount = 1
	}

	h := &Handler{
		service: service,
		config:  config,
		logger:  service.logger,
	}

	if config.RateLimit > 0 {
		burst := config.RateBurst
		if burst <= 0 {
			burst = config.RateLimit * 2
		}
		h.rateLimiter = security.NewRateLimiter(config.RateLimit, burst, service.logger)
	}

	var err error
	switch {
	case config.AccessTokenHash != "":
		h.tokenGuard, err = security.NewAccessTokenGuardFromHash(config.AccessTokenHash)
	case config.AccessToken != "":
		h.tokenGuard, err = security.NewAccessTokenGuard(config.AccessToken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set up access token guard: %w", err)
	}

	return h, nil
}

// RegisterHandlers registers the dashboard routes on the given mux.
// Both routes carry request-ID middleware for audit correlation.
func (h *Handler) RegisterHandlers(mux *http.ServeMux) {
	mux.Handle(h.config.DashboardPath, security.RequestIDMiddleware(http.HandlerFunc(h.ServeDashboard)))
	mux.Handle(h.config.ReportPath, security.RequestIDMiddleware(http.HandlerFunc(h.ServeReport)))
}

// Stop releases handler resources (the rate limiter's cleanup goroutine).
func (h *Handler) Stop() {
	if h.rateLimiter != nil {
		h.rateLimiter.Stop()
	}
}

// ServeDashboard renders the compliance report as an HTML dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	report, ok := h.evaluateForRequest(w, r)
	if !ok {
		return
	}

	security.SetDashboardSecurityHeaders(w, h.config.ServerURL)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	h.renderDashboard(w, report)

	h.finishRequest(r, h.config.DashboardPath, http.StatusOK, start)
}

// ServeReport serves the compliance report as JSON.
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	report, ok := h.evaluateForRequest(w, r)
	if !ok {
		return
	}

	security.SetSecurityHeaders(w, h.config.ServerURL)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)

	h.finishRequest(r, h.config.ReportPath, http.StatusOK, start)
}

// evaluateForRequest runs the shared request checks (method, rate limit,
// access token) and evaluates the report. Returns false when a response has
// already been written.
func (h *Handler) evaluateForRequest(w http.ResponseWriter, r *http.Request) (*Report, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	clientIP := security.GetClientIP(r, h.config.TrustProxy, h.config.TrustedProxyCount)
	if h.checkRateLimit(w, r, clientIP) {
		return nil, false
	}
	if h.checkAccessToken(w, r, clientIP) {
		return nil, false
	}

	report := h.service.Evaluate(r.Context(), h.requestInfo(r))

	if h.service.config.Auditor != nil {
		h.service.config.Auditor.LogDashboardViewed(security.GetRequestID(r.Context()), clientIP, r.URL.Path)
	}
	return report, true
}

// checkRateLimit returns true if the request was rejected and a response
// written.
func (h *Handler) checkRateLimit(w http.ResponseWriter, r *http.Request, clientIP string) bool {
	if h.rateLimiter == nil || h.rateLimiter.Allow(clientIP) {
		return false
	}

	h.logger.Warn("Rate limit exceeded on compliance dashboard",
		"ip", clientIP,
		"endpoint", r.URL.Path)

	if h.service.config.Instrumentation != nil {
		h.service.config.Instrumentation.Metrics().RecordRateLimitExceeded(r.Context(), "ip")
	}
	if h.service.config.Auditor != nil {
		h.service.config.Auditor.LogRateLimitExceeded(clientIP, r.URL.Path)
	}

	w.Header().Set("Retry-After", "60")
	http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
	return true
}

// checkAccessToken returns true if the request was rejected and a response
// written.
func (h *Handler) checkAccessToken(w http.ResponseWriter, r *http.Request, clientIP string) bool {
	if h.tokenGuard == nil || h.tokenGuard.VerifyRequest(r) {
		return false
	}

	h.logger.Warn("Unauthorized compliance dashboard access",
		"ip", clientIP,
		"endpoint", r.URL.Path,
		"has_auth_header", r.Header.Get("Authorization") != "")

	if h.service.config.Instrumentation != nil {
		h.service.config.Instrumentation.Metrics().RecordAccessDenied(r.Context(), "invalid_token")
	}
	if h.service.config.Auditor != nil {
		h.service.config.Auditor.LogAccessDenied(security.GetRequestID(r.Context()), clientIP, "invalid_token")
	}

	w.Header().Set("WWW-Authenticate", `Bearer realm="compliance"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
	return true
}

// requestInfo extracts the fragments of the request the HTTPS rule consumes.
// X-Forwarded-Proto is honored only behind a trusted proxy.
func (h *Handler) requestInfo(r *http.Request) RequestInfo {
	https := r.TLS != nil
	if !https && h.config.TrustProxy {
		https = strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	}
	return RequestInfo{
		Host:  r.Host,
		HTTPS: https,
	}
}

// finishRequest emits the HTTP request metric.
func (h *Handler) finishRequest(r *http.Request, endpoint string, status int, start time.Time) {
	if h.service.config.Instrumentation == nil {
		return
	}
	h.service.config.Instrumentation.Metrics().RecordHTTPRequest(
		r.Context(), r.Method, endpoint, status, float64(time.Since(start).Milliseconds()))
}
