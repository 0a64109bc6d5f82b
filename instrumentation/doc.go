// Package instrumentation provides OpenTelemetry metrics and tracing for the
// oauth-compliance library.
//
// Instrumentation is optional: when disabled (or when no Instrumentation is
// wired into the service), no-op providers are used and recording has zero
// overhead.
//
// # Metrics
//
// Instruments are grouped by layer:
//   - evaluator: evaluation counts, durations, per-requirement outcomes,
//     failsafe activations
//   - http: dashboard request counts and durations
//   - store: configuration record lookups by result
//   - security: rate limit violations, denied access attempts, audit events
//
// # Tracing
//
// Spans are created per evaluation and per rule group. Only rule metadata
// (keys, levels, statuses) is attached as attributes; raw configuration
// values never enter traces.
//
// # Example Usage
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "oauth-compliance",
//		ServiceVersion: "1.0.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
package instrumentation
