package compliance

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/giantswarm/oauth-compliance/instrumentation"
	"github.com/giantswarm/oauth-compliance/registry"
	"github.com/giantswarm/oauth-compliance/security"
)

// Service evaluates an OAuth deployment's configuration against the
// OAuth 2.1 requirement matrix.
//
// A Service is stateless between evaluations: each Evaluate call reads the
// configuration store afresh and builds a new Report. It is safe for
// concurrent use as long as the configured store and module registry are.
type Service struct {
	config   *Config
	resolver *registry.Resolver
	accessor *Accessor
	logger   *slog.Logger
}

// NewService creates a compliance service.
func NewService(config *Config) (*Service, error) {
	if config == nil {
		config = &Config{}
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	resolver := registry.NewResolver(config.Capabilities, config.Modules, config.Logger)
	return &Service{
		config:   config,
		resolver: resolver,
		accessor: NewAccessor(config.Store, resolver, config.Logger, config.Instrumentation),
		logger:   config.Logger,
	}, nil
}

// Evaluate runs all rule groups and aggregates the results into a Report.
//
// Evaluate never fails: rules classify missing configuration as ordinary
// outcomes, and any panic during evaluation is recovered into the fixed
// failsafe report. Two calls with unchanged underlying configuration yield
// identical reports.
func (s *Service) Evaluate(ctx context.Context, req RequestInfo) (report *Report) {
	start := time.Now()

	var span trace.Span
	if s.config.Instrumentation != nil {
		ctx, span = s.config.Instrumentation.Tracer("evaluator").Start(ctx, "compliance.evaluate")
		defer span.End()
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Compliance evaluation aborted, returning failsafe report",
				"panic", r)
			instrumentation.SetSpanError(span, "evaluation aborted")
			if s.config.Instrumentation != nil {
				s.config.Instrumentation.Metrics().RecordFailsafe(ctx)
			}
			if s.config.Auditor != nil {
				s.config.Auditor.LogEvaluationFailsafe(security.GetRequestID(ctx))
			}
			report = failsafeReport()
		}
	}()

	core := s.evaluateCoreRequirements(ctx, req)
	metadata := s.evaluateServerMetadata(ctx)
	practices := s.evaluateBestPractices(ctx)

	overall := s.aggregate(core, metadata, practices)
	report = &Report{
		CoreRequirements: core,
		ServerMetadata:   metadata,
		BestPractices:    practices,
		Overall:          overall,
		Summary:          buildSummary(overall, core, metadata, practices),
	}

	s.recordEvaluation(ctx, span, report, time.Since(start))
	return report
}

// aggregate rolls the per-requirement outcomes up into weighted scores and
// the overall classification.
func (s *Service) aggregate(groups ...map[string]Requirement) Overall {
	counts := map[Level]*Score{
		LevelMandatory:   {},
		LevelRequired:    {},
		LevelRecommended: {},
	}
	for _, group := range groups {
		for _, req := range group {
			score, ok := counts[req.Level]
			if !ok {
				continue
			}
			score.Total++
			if req.Status.Passed() {
				score.Compliant++
			}
		}
	}

	mandatory := finalizeScore(*counts[LevelMandatory], 0)
	required := finalizeScore(*counts[LevelRequired], 100)
	recommended := finalizeScore(*counts[LevelRecommended], 100)

	return Overall{
		Status:      s.classify(mandatory, required, recommended),
		Mandatory:   mandatory,
		Required:    required,
		Recommended: recommended,
	}
}

// classify derives the overall status from the per-level percentages.
func (s *Service) classify(mandatory, required, recommended Score) OverallStatus {
	switch {
	case mandatory.Percentage < 100:
		return OverallNonCompliant
	case required.Percentage < 100:
		return OverallPartiallyCompliant
	case recommended.Percentage >= s.config.FullyCompliantThreshold:
		return OverallFullyCompliant
	default:
		return OverallMostlyCompliant
	}
}

// finalizeScore computes the percentage for a score. emptyPercent is the
// percentage assigned when no rules were evaluated at this level: 0 for the
// mandatory tier, 100 for the others.
func finalizeScore(score Score, emptyPercent float64) Score {
	if score.Total == 0 {
		score.Percentage = emptyPercent
		return score
	}
	score.Percentage = roundPercent(float64(score.Compliant) / float64(score.Total) * 100)
	return score
}

// roundPercent rounds to one decimal place. This is the library's single
// rounding policy; 2 of 3 compliant yields 66.7.
func roundPercent(v float64) float64 {
	return math.Round(v*10) / 10
}

// buildSummary derives the operator-facing digest: failed mandatory
// requirements become critical issues, all other non-passing requirements
// become recommendations. Both lists are sorted by requirement key so the
// summary is stable across evaluations.
func buildSummary(overall Overall, groups ...map[string]Requirement) Summary {
	var critical, recommendations []string

	var all []Requirement
	for _, group := range groups {
		for _, req := range group {
			all = append(all, req)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })

	for _, req := range all {
		if req.Status.Passed() {
			continue
		}
		if req.Level == LevelMandatory {
			critical = append(critical, req.Title)
		} else {
			recommendations = append(recommendations, req.Title)
		}
	}

	return Summary{
		Message:         summaryMessage(overall.Status),
		CriticalIssues:  critical,
		Recommendations: recommendations,
	}
}

// summaryMessage maps the overall status to its one-line description.
func summaryMessage(status OverallStatus) string {
	switch status {
	case OverallFullyCompliant:
		return "The server is OAuth 2.1 compliant and follows current best practices."
	case OverallMostlyCompliant:
		return "The server is OAuth 2.1 compliant; adopting more best practices is recommended."
	case OverallPartiallyCompliant:
		return "All mandatory requirements pass, but server metadata discovery needs attention."
	default:
		return "Mandatory OAuth 2.1 requirements are failing. Address the critical issues."
	}
}

// failsafeReport is the fixed report returned when evaluation aborts: one
// mandatory service_error requirement, zero scores, and a pointer at the
// logs. It is the only top-level error-recovery path.
func failsafeReport() *Report {
	req := newRequirement(RuleServiceError, LevelMandatory, StatusNonCompliant)

	return &Report{
		CoreRequirements: map[string]Requirement{RuleServiceError: req},
		ServerMetadata:   map[string]Requirement{},
		BestPractices:    map[string]Requirement{},
		Overall: Overall{
			Status:      OverallNonCompliant,
			Mandatory:   Score{Compliant: 0, Total: 1, Percentage: 0},
			Required:    Score{},
			Recommended: Score{},
		},
		Summary: Summary{
			Message:         "Compliance evaluation failed unexpectedly. Check the server logs for details.",
			CriticalIssues:  []string{req.Title},
			Recommendations: []string{},
		},
	}
}

// recordEvaluation emits evaluation metrics, trace attributes, and the audit
// event for a completed (non-failsafe) evaluation.
func (s *Service) recordEvaluation(ctx context.Context, span trace.Span, report *Report, elapsed time.Duration) {
	status := string(report.Overall.Status)

	instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrOverallStatus, status))
	instrumentation.SetSpanSuccess(span)

	if s.config.Instrumentation != nil {
		metrics := s.config.Instrumentation.Metrics()
		metrics.RecordEvaluation(ctx, status, float64(elapsed.Milliseconds()))
		for _, group := range []map[string]Requirement{report.CoreRequirements, report.ServerMetadata, report.BestPractices} {
			for _, req := range group {
				metrics.RecordRequirement(ctx, string(req.Level), string(req.Status))
			}
		}
	}

	if s.config.Auditor != nil {
		s.config.Auditor.LogEvaluationCompleted(security.GetRequestID(ctx), status)
	}

	s.logger.Debug("Compliance evaluation completed",
		"overall_status", status,
		"mandatory", report.Overall.Mandatory.Percentage,
		"required", report.Overall.Required.Percentage,
		"recommended", report.Overall.Recommended.Percentage,
		"duration_ms", elapsed.Milliseconds())
}
