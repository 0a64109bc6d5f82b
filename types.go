package compliance

// Level classifies how strongly a requirement binds.
type Level string

// Requirement levels, strongest first.
const (
	// LevelMandatory requirements must pass for OAuth 2.1 compliance.
	LevelMandatory Level = "mandatory"

	// LevelRequired requirements should pass for discovery compliance (RFC 8414).
	LevelRequired Level = "required"

	// LevelRecommended requirements are best practices and non-blocking.
	LevelRecommended Level = "recommended"
)

// Status is the outcome of evaluating a single requirement.
type Status string

// Requirement statuses.
const (
	// StatusCompliant means the requirement is satisfied.
	StatusCompliant Status = "compliant"

	// StatusNonCompliant means the requirement is violated.
	StatusNonCompliant Status = "non_compliant"

	// StatusWarning means the configuration works but weakens security.
	StatusWarning Status = "warning"

	// StatusRecommended means a best practice is not yet adopted.
	StatusRecommended Status = "recommended"
)

// Passed reports whether the status counts toward the compliant score.
func (s Status) Passed() bool {
	return s == StatusCompliant
}

// OverallStatus is the aggregated compliance classification of a deployment.
type OverallStatus string

// Overall statuses, ordered from worst to best.
const (
	OverallNonCompliant       OverallStatus = "non_compliant"
	OverallPartiallyCompliant OverallStatus = "partially_compliant"
	OverallMostlyCompliant    OverallStatus = "mostly_compliant"
	OverallFullyCompliant     OverallStatus = "fully_compliant"
)

// Rank returns the ordering of an overall status; higher is better.
// Unknown statuses rank below non_compliant.
func (s OverallStatus) Rank() int {
	switch s {
	case OverallNonCompliant:
		return 1
	case OverallPartiallyCompliant:
		return 2
	case OverallMostlyCompliant:
		return 3
	case OverallFullyCompliant:
		return 4
	default:
		return 0
	}
}

// Requirement is the evaluated outcome of one compliance rule.
// Requirements are constructed fresh per evaluation and immutable once built.
type Requirement struct {
	// Key uniquely identifies the rule within its group.
	Key string `json:"key"`

	// Title is a short human-readable name for the requirement.
	Title string `json:"title"`

	// Description explains what the requirement checks and why.
	Description string `json:"description"`

	// Level is the requirement's binding strength.
	Level Level `json:"level"`

	// Status is the evaluated outcome.
	Status Status `json:"status"`

	// Message describes the outcome for the operator.
	Message string `json:"message"`

	// Remediation is guidance for fixing a non-passing requirement.
	// Empty when the requirement passed.
	Remediation string `json:"remediation,omitempty"`
}

// Score summarizes one requirement level's results.
type Score struct {
	// Compliant is the number of requirements with StatusCompliant.
	Compliant int `json:"compliant"`

	// Total is the number of requirements evaluated at this level.
	Total int `json:"total"`

	// Percentage is Compliant/Total*100, rounded to one decimal place.
	// An empty mandatory tier scores 0; empty required/recommended tiers
	// score 100 (absence of applicable rules satisfies non-mandatory tiers).
	Percentage float64 `json:"percentage"`
}

// Overall aggregates the per-level scores and the resulting classification.
type Overall struct {
	Status      OverallStatus `json:"status"`
	Mandatory   Score         `json:"mandatory_score"`
	Required    Score         `json:"required_score"`
	Recommended Score         `json:"recommended_score"`
}

// Summary is the operator-facing digest of a report.
type Summary struct {
	// Message is a one-line description of the overall outcome.
	Message string `json:"message"`

	// CriticalIssues lists the titles of failed mandatory requirements.
	CriticalIssues []string `json:"critical_issues"`

	// Recommendations lists the titles of non-passing required and
	// recommended requirements, including warnings.
	Recommendations []string `json:"recommendations"`
}

// Report is the result of one compliance evaluation. It is an ephemeral view
// object: built once per request, never persisted, and stable for identical
// underlying configuration (no timestamps or per-evaluation identifiers).
type Report struct {
	// CoreRequirements holds the mandatory OAuth 2.1 rules.
	CoreRequirements map[string]Requirement `json:"core_requirements"`

	// ServerMetadata holds the RFC 8414 discovery rules.
	ServerMetadata map[string]Requirement `json:"server_metadata"`

	// BestPractices holds the recommended best-practice rules.
	BestPractices map[string]Requirement `json:"best_practices"`

	// Overall holds the aggregated scores and classification.
	Overall Overall `json:"overall_status"`

	// Summary is the operator-facing digest.
	Summary Summary `json:"summary"`
}

// RequestInfo carries the fragments of the inbound HTTP request consumed by
// the HTTPS enforcement rule: the transport scheme and the Host header.
// No other rule reads request state.
type RequestInfo struct {
	// Host is the request's Host header, possibly including a port.
	Host string

	// HTTPS reports whether the request arrived over TLS, directly or via a
	// trusted proxy's X-Forwarded-Proto.
	HTTPS bool
}
