package security

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Auditor handles security event logging with PII protection.
type Auditor struct {
	logger  *slog.Logger
	enabled bool
}

// NewAuditor creates a new security auditor
func NewAuditor(logger *slog.Logger, enabled bool) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		logger:  logger,
		enabled: enabled,
	}
}

// Event represents a security audit event
type Event struct {
	Type      string
	RequestID string
	IPAddress string
	Details   map[string]any
	Timestamp time.Time
}

// LogEvent logs a security event with hashed client addresses.
// Each logged event carries a unique event ID for cross-system correlation.
func (a *Auditor) LogEvent(event Event) {
	if !a.enabled {
		return
	}

	event.Timestamp = time.Now()

	a.logger.Info("security_audit",
		"event_id", uuid.NewString(),
		"event_type", event.Type,
		"request_id", event.RequestID,
		"ip_hash", hashForLogging(event.IPAddress),
		"details", event.Details,
		"timestamp", event.Timestamp,
	)
}

// LogDashboardViewed logs a successful dashboard request
func (a *Auditor) LogDashboardViewed(requestID, ipAddress, endpoint string) {
	a.LogEvent(Event{
		Type:      EventDashboardViewed,
		RequestID: requestID,
		IPAddress: ipAddress,
		Details:   map[string]any{"endpoint": endpoint},
	})
}

// LogEvaluationCompleted logs a finished compliance evaluation
func (a *Auditor) LogEvaluationCompleted(requestID, overallStatus string) {
	a.LogEvent(Event{
		Type:      EventEvaluationCompleted,
		RequestID: requestID,
		Details:   map[string]any{"overall_status": overallStatus},
	})
}

// LogEvaluationFailsafe logs an evaluation that returned the failsafe report
func (a *Auditor) LogEvaluationFailsafe(requestID string) {
	a.LogEvent(Event{
		Type:      EventEvaluationFailsafe,
		RequestID: requestID,
	})
}

// LogAccessDenied logs a rejected dashboard access attempt
func (a *Auditor) LogAccessDenied(requestID, ipAddress, reason string) {
	a.LogEvent(Event{
		Type:      EventAccessDenied,
		RequestID: requestID,
		IPAddress: ipAddress,
		Details:   map[string]any{"reason": reason},
	})
}

// LogRateLimitExceeded logs a rate-limited dashboard request
func (a *Auditor) LogRateLimitExceeded(ipAddress, endpoint string) {
	a.LogEvent(Event{
		Type:      EventRateLimitExceeded,
		IPAddress: ipAddress,
		Details:   map[string]any{"endpoint": endpoint},
	})
}

// hashForLogging returns a truncated SHA-256 of a value for log correlation
// without storing the value itself. Empty input stays empty.
func hashForLogging(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])[:16]
}
