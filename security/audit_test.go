package security

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newCapturingAuditor(enabled bool) (*Auditor, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	return NewAuditor(logger, enabled), &buf
}

func TestAuditor_LogEvent(t *testing.T) {
	auditor, buf := newCapturingAuditor(true)

	auditor.LogDashboardViewed("req-123", "203.0.113.1", "/admin/compliance")

	out := buf.String()
	if !strings.Contains(out, EventDashboardViewed) {
		t.Errorf("audit log missing event type: %s", out)
	}
	if !strings.Contains(out, "req-123") {
		t.Errorf("audit log missing request ID: %s", out)
	}
	if !strings.Contains(out, "event_id") {
		t.Errorf("audit log missing event ID: %s", out)
	}
	// The raw client address must never appear, only its hash.
	if strings.Contains(out, "203.0.113.1") {
		t.Errorf("audit log leaked the client IP: %s", out)
	}
	if !strings.Contains(out, "ip_hash") {
		t.Errorf("audit log missing the IP hash: %s", out)
	}
}

func TestAuditor_Disabled(t *testing.T) {
	auditor, buf := newCapturingAuditor(false)

	auditor.LogEvaluationCompleted("req-123", "fully_compliant")

	if buf.Len() != 0 {
		t.Errorf("disabled auditor wrote output: %s", buf.String())
	}
}

func TestAuditor_EventHelpers(t *testing.T) {
	tests := []struct {
		name string
		log  func(a *Auditor)
		want string
	}{
		{
			name: "evaluation completed",
			log:  func(a *Auditor) { a.LogEvaluationCompleted("r1", "mostly_compliant") },
			want: EventEvaluationCompleted,
		},
		{
			name: "evaluation failsafe",
			log:  func(a *Auditor) { a.LogEvaluationFailsafe("r2") },
			want: EventEvaluationFailsafe,
		},
		{
			name: "access denied",
			log:  func(a *Auditor) { a.LogAccessDenied("r3", "203.0.113.1", "invalid_token") },
			want: EventAccessDenied,
		},
		{
			name: "rate limit exceeded",
			log:  func(a *Auditor) { a.LogRateLimitExceeded("203.0.113.1", "/admin/compliance") },
			want: EventRateLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auditor, buf := newCapturingAuditor(true)
			tt.log(auditor)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("audit log missing %q: %s", tt.want, buf.String())
			}
		})
	}
}

func TestHashForLogging(t *testing.T) {
	if got := hashForLogging(""); got != "" {
		t.Errorf("hashForLogging(\"\") = %q, want empty", got)
	}

	h1 := hashForLogging("203.0.113.1")
	h2 := hashForLogging("203.0.113.2")
	if h1 == h2 {
		t.Error("distinct inputs should hash differently")
	}
	if len(h1) != 16 {
		t.Errorf("len(hash) = %d, want 16", len(h1))
	}
	if h1 != hashForLogging("203.0.113.1") {
		t.Error("hashing should be deterministic")
	}
}
