package compliance

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHandler(t *testing.T, config HandlerConfig) *Handler {
	t.Helper()

	handler, err := NewHandler(newCompliantService(t), config)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	t.Cleanup(handler.Stop)
	return handler
}

func serveMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	h.RegisterHandlers(mux)
	return mux
}

func TestNewHandler_RequiresService(t *testing.T) {
	if _, err := NewHandler(nil, HandlerConfig{}); err == nil {
		t.Error("NewHandler(nil) should fail")
	}
}

func TestNewHandler_Defaults(t *testing.T) {
	handler := newTestHandler(t, HandlerConfig{})

	if handler.config.DashboardPath != DefaultDashboardPath {
		t.Errorf("DashboardPath = %q, want %q", handler.config.DashboardPath, DefaultDashboardPath)
	}
	if handler.config.ReportPath != DefaultReportPath {
		t.Errorf("ReportPath = %q, want %q", handler.config.ReportPath, DefaultReportPath)
	}
	if handler.config.TrustedProxyCount != 1 {
		t.Errorf("TrustedProxyCount = %d, want 1", handler.config.TrustedProxyCount)
	}
}

func TestServeReport(t *testing.T) {
	mux := serveMux(newTestHandler(t, HandlerConfig{}))

	req := httptest.NewRequest(http.MethodGet, "http://localhost:8080"+DefaultReportPath, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	// The loopback Host keeps HTTPS enforcement satisfied over plain HTTP.
	if report.Overall.Status != OverallFullyCompliant {
		t.Errorf("overall status = %q, want fully_compliant (issues: %v)",
			report.Overall.Status, report.Summary.CriticalIssues)
	}
}

func TestServeDashboard(t *testing.T) {
	mux := serveMux(newTestHandler(t, HandlerConfig{}))

	req := httptest.NewRequest(http.MethodGet, "http://localhost:8080"+DefaultDashboardPath, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if csp := rec.Header().Get("Content-Security-Policy"); csp == "" {
		t.Error("dashboard response should carry a Content-Security-Policy header")
	}

	body := rec.Body.String()
	for _, want := range []string{"OAuth 2.1 Compliance", "Fully Compliant", "Mandatory"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard body missing %q", want)
		}
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	mux := serveMux(newTestHandler(t, HandlerConfig{}))

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, DefaultReportPath, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s status = %d, want 405", method, rec.Code)
		}
	}
}

func TestHandler_AccessToken(t *testing.T) {
	mux := serveMux(newTestHandler(t, HandlerConfig{AccessToken: "secret-token"}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong token", "Bearer wrong", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret-token", http.StatusUnauthorized},
		{"valid token", "Bearer secret-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, DefaultReportPath, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if rec.Header().Get("WWW-Authenticate") == "" {
					t.Error("401 response should carry WWW-Authenticate")
				}
			}
		})
	}
}

func TestHandler_RateLimit(t *testing.T) {
	mux := serveMux(newTestHandler(t, HandlerConfig{RateLimit: 1, RateBurst: 2}))

	var limited bool
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, DefaultReportPath, nil)
		req.RemoteAddr = "192.0.2.1:12345"
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code == http.StatusTooManyRequests {
			limited = true
			if rec.Header().Get("Retry-After") == "" {
				t.Error("429 response should carry Retry-After")
			}
			break
		}
	}
	if !limited {
		t.Error("rate limiter never rejected a request within the burst window")
	}
}

func TestHandler_RequestInfo(t *testing.T) {
	handler := newTestHandler(t, HandlerConfig{TrustProxy: true})
	untrusting := newTestHandler(t, HandlerConfig{})

	tests := []struct {
		name    string
		handler *Handler
		proto   string
		tls     bool
		want    bool
	}{
		{"direct tls", handler, "", true, true},
		{"plain http", handler, "", false, false},
		{"forwarded https trusted", handler, "https", false, true},
		{"forwarded https case-insensitive", handler, "HTTPS", false, true},
		{"forwarded https untrusted proxy", untrusting, "https", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.tls {
				req = httptest.NewRequest(http.MethodGet, "https://auth.example.com/", nil)
			} else {
				req = httptest.NewRequest(http.MethodGet, "http://auth.example.com/", nil)
			}
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}

			info := tt.handler.requestInfo(req)
			if info.HTTPS != tt.want {
				t.Errorf("HTTPS = %v, want %v", info.HTTPS, tt.want)
			}
			if info.Host != "auth.example.com" {
				t.Errorf("Host = %q, want auth.example.com", info.Host)
			}
		})
	}
}

func TestHandler_CustomPaths(t *testing.T) {
	mux := serveMux(newTestHandler(t, HandlerConfig{
		DashboardPath: "/status/oauth",
		ReportPath:    "/status/oauth.json",
	}))

	req := httptest.NewRequest(http.MethodGet, "/status/oauth.json", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 on custom report path", rec.Code)
	}
}
