package compliance

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strings"
)

// dashboardTemplate is the HTML page served at the dashboard path. All data
// comes from the Report structure, so the page renders identically for
// identical configuration.
const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>OAuth 2.1 Compliance</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: #f5f6f8;
            color: #1f2633;
            padding: 2rem 1rem;
        }
        .container { max-width: 860px; margin: 0 auto; }
        h1 { font-size: 1.5rem; margin-bottom: 0.25rem; }
        .subtitle { color: #5b6472; margin-bottom: 1.5rem; }
        .overall {
            background: white;
            border-radius: 10px;
            padding: 1.25rem 1.5rem;
            margin-bottom: 1.5rem;
            box-shadow: 0 1px 3px rgba(0,0,0,0.08);
        }
        .overall-status { font-size: 1.15rem; font-weight: 600; }
        .overall-status.fully { color: #1a7f37; }
        .overall-status.mostly { color: #7a6a00; }
        .overall-status.partially { color: #b35c00; }
        .overall-status.non { color: #c0392b; }
        .scores { display: flex; gap: 1rem; margin-top: 1rem; flex-wrap: wrap; }
        .score {
            flex: 1;
            min-width: 180px;
            background: #f8f9fb;
            border-radius: 8px;
            padding: 0.75rem 1rem;
        }
        .score .label { font-size: 0.8rem; text-transform: uppercase; color: #5b6472; letter-spacing: 0.03em; }
        .score .value { font-size: 1.3rem; font-weight: 600; margin-top: 0.25rem; }
        .score .detail { font-size: 0.85rem; color: #5b6472; }
        .group {
            background: white;
            border-radius: 10px;
            padding: 1.25rem 1.5rem;
            margin-bottom: 1.5rem;
            box-shadow: 0 1px 3px rgba(0,0,0,0.08);
        }
        .group h2 { font-size: 1.05rem; margin-bottom: 0.75rem; }
        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 0.5rem 0.6rem; border-bottom: 1px solid #eceef2; vertical-align: top; }
        th { font-size: 0.8rem; text-transform: uppercase; color: #5b6472; letter-spacing: 0.03em; }
        td.status { white-space: nowrap; font-weight: 600; }
        td.status.compliant { color: #1a7f37; }
        td.status.warning { color: #b35c00; }
        td.status.recommended { color: #7a6a00; }
        td.status.non_compliant { color: #c0392b; }
        .req-title { font-weight: 600; }
        .req-message { color: #5b6472; font-size: 0.9rem; margin-top: 0.2rem; }
        .req-remediation { color: #8a5a00; font-size: 0.85rem; margin-top: 0.2rem; }
        .summary { background: white; border-radius: 10px; padding: 1.25rem 1.5rem; box-shadow: 0 1px 3px rgba(0,0,0,0.08); }
        .summary h2 { font-size: 1.05rem; margin-bottom: 0.5rem; }
        .summary ul { margin: 0.5rem 0 0 1.25rem; }
        .summary li { margin-bottom: 0.3rem; font-size: 0.9rem; }
        .summary .critical { color: #c0392b; }
        .summary .recommendation { color: #5b6472; }
    </style>
</head>
<body>
    <div class="container">
        <h1>OAuth 2.1 Compliance</h1>
        <p class="subtitle">{{.Summary.Message}}</p>
        <div class="overall">
            <div class="overall-status {{.OverallClass}}">{{.OverallLabel}}</div>
            <div class="scores">
                <div class="score">
                    <div class="label">Mandatory</div>
                    <div class="value">{{printf "%.1f" .Overall.Mandatory.Percentage}}%</div>
                    <div class="detail">{{.Overall.Mandatory.Compliant}} of {{.Overall.Mandatory.Total}} compliant</div>
                </div>
                <div class="score">
                    <div class="label">Required</div>
                    <div class="value">{{printf "%.1f" .Overall.Required.Percentage}}%</div>
                    <div class="detail">{{.Overall.Required.Compliant}} of {{.Overall.Required.Total}} compliant</div>
                </div>
                <div class="score">
                    <div class="label">Recommended</div>
                    <div class="value">{{printf "%.1f" .Overall.Recommended.Percentage}}%</div>
                    <div class="detail">{{.Overall.Recommended.Compliant}} of {{.Overall.Recommended.Total}} compliant</div>
                </div>
            </div>
        </div>
        {{range .Groups}}
        <div class="group">
            <h2>{{.Title}}</h2>
            <table>
                <tr><th>Requirement</th><th>Level</th><th>Status</th></tr>
                {{range .Requirements}}
                <tr>
                    <td>
                        <div class="req-title">{{.Title}}</div>
                        <div class="req-message">{{.Message}}</div>
                        {{if .Remediation}}<div class="req-remediation">{{.Remediation}}</div>{{end}}
                    </td>
                    <td>{{.Level}}</td>
                    <td class="status {{.Status}}">{{.StatusLabel}}</td>
                </tr>
                {{end}}
            </table>
        </div>
        {{end}}
        {{if or .Summary.CriticalIssues .Summary.Recommendations}}
        <div class="summary">
            <h2>Action Items</h2>
            <ul>
                {{range .Summary.CriticalIssues}}<li class="critical">{{.}}</li>{{end}}
                {{range .Summary.Recommendations}}<li class="recommendation">{{.}}</li>{{end}}
            </ul>
        </div>
        {{end}}
    </div>
</body>
</html>`

// dashboardTmpl is parsed once at package initialization.
var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardTemplate))

// dashboardData is the template data derived from a Report.
type dashboardData struct {
	Overall      Overall
	OverallLabel string
	OverallClass string
	Groups       []dashboardGroup
	Summary      Summary
}

type dashboardGroup struct {
	Title        string
	Requirements []dashboardRequirement
}

type dashboardRequirement struct {
	Title       string
	Message     string
	Remediation string
	Level       Level
	Status      Status
	StatusLabel string
}

// overallLabels maps the machine-readable overall status to display text.
var overallLabels = map[OverallStatus]string{
	OverallFullyCompliant:     "Fully Compliant",
	OverallMostlyCompliant:    "Mostly Compliant",
	OverallPartiallyCompliant: "Partially Compliant",
	OverallNonCompliant:       "Non-Compliant",
}

// overallClasses maps the overall status to a CSS class.
var overallClasses = map[OverallStatus]string{
	OverallFullyCompliant:     "fully",
	OverallMostlyCompliant:    "mostly",
	OverallPartiallyCompliant: "partially",
	OverallNonCompliant:       "non",
}

// statusLabels maps the machine-readable status to display text.
var statusLabels = map[Status]string{
	StatusCompliant:    "Compliant",
	StatusNonCompliant: "Non-Compliant",
	StatusWarning:      "Warning",
	StatusRecommended:  "Recommended",
}

// renderDashboard executes the dashboard template to a buffer first to
// handle errors cleanly, then writes the buffered response. Falls back to
// plain text on execution error.
func (h *Handler) renderDashboard(w http.ResponseWriter, report *Report) {
	data := buildDashboardData(report)

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		h.logger.Error("Failed to execute compliance dashboard template", "error", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "OAuth 2.1 compliance: %s\n", report.Overall.Status)
		return
	}
	_, _ = buf.WriteTo(w)
}

// buildDashboardData converts a Report into template data. Requirements
// within each group are sorted by key for stable rendering.
func buildDashboardData(report *Report) dashboardData {
	return dashboardData{
		Overall:      report.Overall,
		OverallLabel: overallLabels[report.Overall.Status],
		OverallClass: overallClasses[report.Overall.Status],
		Groups: []dashboardGroup{
			buildDashboardGroup("Core Requirements", report.CoreRequirements),
			buildDashboardGroup("Server Metadata", report.ServerMetadata),
			buildDashboardGroup("Best Practices", report.BestPractices),
		},
		Summary: report.Summary,
	}
}

func buildDashboardGroup(title string, requirements map[string]Requirement) dashboardGroup {
	keys := make([]string, 0, len(requirements))
	for key := range requirements {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	group := dashboardGroup{Title: title}
	for _, key := range keys {
		req := requirements[key]
		label := statusLabels[req.Status]
		if label == "" {
			label = strings.ReplaceAll(string(req.Status), "_", " ")
		}
		group.Requirements = append(group.Requirements, dashboardRequirement{
			Title:       req.Title,
			Message:     req.Message,
			Remediation: req.Remediation,
			Level:       req.Level,
			Status:      req.Status,
			StatusLabel: label,
		})
	}
	return group
}
