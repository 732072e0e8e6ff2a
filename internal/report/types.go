// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import "time"

// ReportType is the discriminant written as report_type.
type ReportType string

// Report types
const (
	TypePRIssues   ReportType = "pr_issues"
	TypeNewIssues  ReportType = "new_issues"
	TypeAllIssues  ReportType = "all_issues"
	TypeCoverage   ReportType = "coverage"
	TypePRCoverage ReportType = "pr_coverage"
)

// TimestampLayout formats generated_at as ISO-8601 with a numeric UTC
// offset, e.g. 2026-02-23T10:00:00.123456+00:00.
const TimestampLayout = "2006-01-02T15:04:05.999999-07:00"

// Report is implemented by every report variant. The set of variants is
// closed.
type Report interface {
	Kind() ReportType
	Project() string
	isReport()
}

// Header holds the fields shared by every report.
type Header struct {
	ReportType  ReportType `json:"report_type"`
	ProjectKey  string     `json:"project_key"`
	GeneratedAt string     `json:"generated_at"`
}

// Kind returns the report discriminant.
func (h Header) Kind() ReportType { return h.ReportType }

// Project returns the resolved project key the report was built for.
func (h Header) Project() string { return h.ProjectKey }

func newHeader(t ReportType, project string, now time.Time) Header {
	return Header{
		ReportType:  t,
		ProjectKey:  project,
		GeneratedAt: now.UTC().Format(TimestampLayout),
	}
}

// Issue is a SonarQube issue restricted to the fields sonar-report emits.
// Line and Assignee are null when the server omits them.
type Issue struct {
	Key          string   `json:"key"`
	Rule         string   `json:"rule"`
	Severity     string   `json:"severity"`
	Type         string   `json:"type"`
	Component    string   `json:"component"`
	Line         *int     `json:"line"`
	Message      string   `json:"message"`
	Effort       string   `json:"effort"`
	Status       string   `json:"status"`
	Assignee     *string  `json:"assignee"`
	Tags         []string `json:"tags"`
	CreationDate string   `json:"creationDate"`
}

// IssueSummary counts issues by severity and by type. Every known severity
// and type is present, with a zero count if no issue has it.
type IssueSummary struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
	ByType     map[string]int `json:"by_type"`
}

// IssueReport is the pr_issues, new_issues and all_issues variant. Exactly
// one of PullRequest and Branch is set.
type IssueReport struct {
	Header
	PullRequest string       `json:"pull_request,omitempty"`
	Branch      string       `json:"branch,omitempty"`
	Summary     IssueSummary `json:"summary"`
	Issues      []Issue      `json:"issues"`
}

func (*IssueReport) isReport() {}

// CoverageMetrics holds the seven coverage metrics. A nil field means the
// server did not report the metric; it is left out of the JSON.
type CoverageMetrics struct {
	Coverage            *float64 `json:"coverage,omitempty"`
	LineCoverage        *float64 `json:"line_coverage,omitempty"`
	BranchCoverage      *float64 `json:"branch_coverage,omitempty"`
	LinesToCover        *int64   `json:"lines_to_cover,omitempty"`
	UncoveredLines      *int64   `json:"uncovered_lines,omitempty"`
	ConditionsToCover   *int64   `json:"conditions_to_cover,omitempty"`
	UncoveredConditions *int64   `json:"uncovered_conditions,omitempty"`
}

// CoverageReport is the coverage and pr_coverage variant. Metrics is nil
// for pull requests, which only have new-code measures.
type CoverageReport struct {
	Header
	Branch      string           `json:"branch,omitempty"`
	PullRequest string           `json:"pull_request,omitempty"`
	Metrics     *CoverageMetrics `json:"metrics,omitempty"`
	NewCode     CoverageMetrics  `json:"new_code"`
}

func (*CoverageReport) isReport() {}
