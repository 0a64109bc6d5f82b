package instrumentation

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common span attribute keys
//
// These constants define attribute key names for observability. The evaluator
// reads configuration only, so no credential material ever flows through it;
// still, only rule metadata (keys, levels, statuses) belongs in traces, never
// raw configuration values, which may embed secrets such as client secrets in
// operator mistakes.
const (
	// Evaluator attributes
	AttrRuleKey       = "compliance.rule.key"       // Requirement key being evaluated
	AttrRuleLevel     = "compliance.rule.level"     // Requirement level (mandatory, required, recommended)
	AttrRuleStatus    = "compliance.rule.status"    // Requirement outcome
	AttrRuleGroup     = "compliance.rule.group"     // Rule group (core, server_metadata, best_practices)
	AttrOverallStatus = "compliance.overall_status" // Aggregated classification
	AttrCapability    = "compliance.capability"     // Capability base name
	AttrModule        = "compliance.module"         // Resolved module identity

	// Configuration store attributes
	AttrConfigName   = "store.config_name" // Record name looked up
	AttrConfigResult = "store.result"      // hit, missing, error

	// Security attributes
	AttrClientIP       = "security.client_ip"
	AttrAuditEventType = "security.audit.event_type"

	// HTTP attributes (in addition to standard semantic conventions)
	AttrHTTPEndpoint   = "http.endpoint"
	AttrHTTPMethod     = "http.method"
	AttrHTTPStatusCode = "http.status_code"
)

// RecordError records an error on a span with proper status codes (nil-safe)
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks a span as successful (nil-safe)
func SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// SetSpanError sets an error status on a span (nil-safe)
func SetSpanError(span trace.Span, message string) {
	if span != nil {
		span.SetStatus(codes.Error, message)
	}
}

// SetSpanAttributes sets attributes on a span (nil-safe)
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span != nil {
		span.SetAttributes(attrs...)
	}
}

// AddRuleAttributes adds requirement evaluation attributes to a span (nil-safe)
func AddRuleAttributes(span trace.Span, key, level, status string) {
	SetSpanAttributes(span,
		attribute.String(AttrRuleKey, key),
		attribute.String(AttrRuleLevel, level),
		attribute.String(AttrRuleStatus, status),
	)
}

// AddRuleGroupAttributes adds rule group attributes to a span (nil-safe)
func AddRuleGroupAttributes(span trace.Span, group string, count int) {
	SetSpanAttributes(span,
		attribute.String(AttrRuleGroup, group),
		attribute.Int("compliance.rule.count", count),
	)
}

// AddCapabilityAttributes adds capability resolution attributes to a span (nil-safe)
func AddCapabilityAttributes(span trace.Span, capability, module string) {
	if capability != "" {
		SetSpanAttributes(span, attribute.String(AttrCapability, capability))
	}
	if module != "" {
		SetSpanAttributes(span, attribute.String(AttrModule, module))
	}
}

// AddHTTPAttributes adds HTTP request attributes to a span (nil-safe)
func AddHTTPAttributes(span trace.Span, method, endpoint string, statusCode int) {
	SetSpanAttributes(span,
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPEndpoint, endpoint),
		attribute.Int(AttrHTTPStatusCode, statusCode),
	)
}

// AddSecurityAttributes adds security-related attributes to a span (nil-safe)
//
// PRIVACY NOTE: Client IP addresses may be considered Personally Identifiable
// Information (PII). Before calling this function, check if IP logging is
// enabled using instrumentation.ShouldLogClientIPs().
func AddSecurityAttributes(span trace.Span, clientIP string) {
	if clientIP != "" {
		SetSpanAttributes(span, attribute.String(AttrClientIP, clientIP))
	}
}
