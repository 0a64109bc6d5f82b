package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateRequestID(t *testing.T) {
	id1 := GenerateRequestID()
	id2 := GenerateRequestID()

	if id1 == "" || id2 == "" {
		t.Fatal("GenerateRequestID() returned empty ID")
	}
	if id1 == id2 {
		t.Error("GenerateRequestID() returned duplicate IDs")
	}
	if !requestIDPattern.MatchString(id1) {
		t.Errorf("generated ID %q does not match the accepted pattern", id1)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()

	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID(empty ctx) = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "test-id-123")
	if got := GetRequestID(ctx); got != "test-id-123" {
		t.Errorf("GetRequestID() = %q, want test-id-123", got)
	}
}

func TestRequestIDFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantKept bool
	}{
		{"valid inbound ID kept", "upstream-id_42", true},
		{"no header generates fresh", "", false},
		{"injection payload rejected", "bad\r\nSet-Cookie: x", false},
		{"overlong rejected", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}

			got := RequestIDFromRequest(req)
			if got == "" {
				t.Fatal("RequestIDFromRequest() returned empty ID")
			}
			if tt.wantKept && got != tt.header {
				t.Errorf("RequestIDFromRequest() = %q, want inbound %q", got, tt.header)
			}
			if !tt.wantKept && got == tt.header {
				t.Error("RequestIDFromRequest() kept an invalid inbound ID")
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seenID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RequestIDMiddleware(inner).ServeHTTP(rec, req)

	if seenID == "" {
		t.Fatal("middleware did not add a request ID to the context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != seenID {
		t.Errorf("response header ID = %q, want %q", got, seenID)
	}
}
