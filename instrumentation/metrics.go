package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all metric instruments for the compliance library
type Metrics struct {
	// Evaluator Metrics
	EvaluationsTotal      metric.Int64Counter
	EvaluationDuration    metric.Float64Histogram
	EvaluationFailsafe    metric.Int64Counter
	RequirementsEvaluated metric.Int64Counter

	// HTTP Layer Metrics (dashboard)
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	RateLimitExceeded   metric.Int64Counter
	AccessDenied        metric.Int64Counter

	// Configuration Store Metrics
	StoreLookupsTotal metric.Int64Counter

	// Audit Metrics
	AuditEventsTotal metric.Int64Counter
}

// newMetrics creates and registers all metric instruments
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}

	evaluatorMeter := inst.Meter("evaluator")
	httpMeter := inst.Meter("http")
	storeMeter := inst.Meter("store")
	securityMeter := inst.Meter("security")

	var err error
	m.EvaluationsTotal, err = evaluatorMeter.Int64Counter(
		"compliance.evaluations.total",
		metric.WithDescription("Total number of compliance evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluations.total counter: %w", err)
	}

	m.EvaluationDuration, err = evaluatorMeter.Float64Histogram(
		"compliance.evaluation.duration",
		metric.WithDescription("Compliance evaluation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluation.duration histogram: %w", err)
	}

	m.EvaluationFailsafe, err = evaluatorMeter.Int64Counter(
		"compliance.evaluation.failsafe",
		metric.WithDescription("Number of evaluations that fell back to the failsafe report"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluation.failsafe counter: %w", err)
	}

	m.RequirementsEvaluated, err = evaluatorMeter.Int64Counter(
		"compliance.requirements.evaluated",
		metric.WithDescription("Number of requirements evaluated, by level and status"),
		metric.WithUnit("{requirement}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create requirements.evaluated counter: %w", err)
	}

	m.HTTPRequestsTotal, err = httpMeter.Int64Counter(
		"compliance.http.requests.total",
		metric.WithDescription("Total number of dashboard HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http.requests.total counter: %w", err)
	}

	m.HTTPRequestDuration, err = httpMeter.Float64Histogram(
		"compliance.http.request.duration",
		metric.WithDescription("Dashboard HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http.request.duration histogram: %w", err)
	}

	m.RateLimitExceeded, err = securityMeter.Int64Counter(
		"compliance.ratelimit.exceeded",
		metric.WithDescription("Number of rate limit violations on the dashboard"),
		metric.WithUnit("{violation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ratelimit.exceeded counter: %w", err)
	}

	m.AccessDenied, err = securityMeter.Int64Counter(
		"compliance.access.denied",
		metric.WithDescription("Number of rejected dashboard access attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create access.denied counter: %w", err)
	}

	m.StoreLookupsTotal, err = storeMeter.Int64Counter(
		"compliance.store.lookups.total",
		metric.WithDescription("Configuration record lookups, by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store.lookups.total counter: %w", err)
	}

	m.AuditEventsTotal, err = securityMeter.Int64Counter(
		"compliance.audit.events.total",
		metric.WithDescription("Total number of audit events"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit.events.total counter: %w", err)
	}

	return m, nil
}

// Helper methods for common metric recording patterns

// RecordEvaluation records a completed compliance evaluation
func (m *Metrics) RecordEvaluation(ctx context.Context, overallStatus string, durationMs float64) {
	m.EvaluationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("overall_status", overallStatus),
	))
	m.EvaluationDuration.Record(ctx, durationMs)
}

// RecordFailsafe records an evaluation that fell back to the failsafe report
func (m *Metrics) RecordFailsafe(ctx context.Context) {
	m.EvaluationFailsafe.Add(ctx, 1)
}

// RecordRequirement records one evaluated requirement
func (m *Metrics) RecordRequirement(ctx context.Context, level, status string) {
	m.RequirementsEvaluated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("level", level),
		attribute.String("status", status),
	))
}

// RecordHTTPRequest records a dashboard HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, endpoint string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("endpoint", endpoint),
		attribute.Int("status", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPRequestDuration.Record(ctx, durationMs, metric.WithAttributes(attribute.String("endpoint", endpoint)))
}

// RecordRateLimitExceeded records a rate limit violation
func (m *Metrics) RecordRateLimitExceeded(ctx context.Context, limiterType string) {
	m.RateLimitExceeded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("limiter_type", limiterType),
	))
}

// RecordAccessDenied records a rejected dashboard access attempt
func (m *Metrics) RecordAccessDenied(ctx context.Context, reason string) {
	m.AccessDenied.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordStoreLookup records a configuration record lookup
func (m *Metrics) RecordStoreLookup(ctx context.Context, name, result string) {
	m.StoreLookupsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("name", name),
		attribute.String("result", result),
	))
}

// RecordAuditEvent records an audit event
func (m *Metrics) RecordAuditEvent(ctx context.Context, eventType string) {
	m.AuditEventsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
	))
}
