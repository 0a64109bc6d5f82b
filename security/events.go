package security

// Audit event types emitted by the compliance dashboard and evaluator.
const (
	// EventDashboardViewed is logged when the compliance dashboard or its
	// JSON endpoint is served successfully.
	EventDashboardViewed = "dashboard_viewed"

	// EventEvaluationCompleted is logged when a compliance evaluation
	// finishes, with the overall status in the event details.
	EventEvaluationCompleted = "evaluation_completed"

	// EventEvaluationFailsafe is logged when an evaluation aborts and the
	// failsafe report is returned instead.
	EventEvaluationFailsafe = "evaluation_failsafe"

	// EventAccessDenied is logged when a dashboard request fails
	// authentication.
	EventAccessDenied = "access_denied"

	// EventRateLimitExceeded is logged when a dashboard request is rejected
	// by the rate limiter.
	EventRateLimitExceeded = "rate_limit_exceeded"
)
