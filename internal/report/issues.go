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

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const issuesEndpoint = "/api/issues/search"

// Severities and IssueTypes list the values every summary reports, in
// descending order of importance.
var (
	Severities = []string{"BLOCKER", "CRITICAL", "MAJOR", "MINOR", "INFO"}
	IssueTypes = []string{"BUG", "VULNERABILITY", "CODE_SMELL"}
)

// OpenStatuses are the statuses kept by AllIssues.
var OpenStatuses = []string{"OPEN", "CONFIRMED", "REOPENED"}

// apiIssue is an element of the issues array of /api/issues/search.
type apiIssue struct {
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

func (a apiIssue) toIssue() Issue {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return Issue{
		Key:          a.Key,
		Rule:         a.Rule,
		Severity:     a.Severity,
		Type:         a.Type,
		Component:    a.Component,
		Line:         a.Line,
		Message:      a.Message,
		Effort:       a.Effort,
		Status:       a.Status,
		Assignee:     a.Assignee,
		Tags:         tags,
		CreationDate: a.CreationDate,
	}
}

// PRIssues reports the unresolved issues of pull request prID.
func (b *Builder) PRIssues(ctx context.Context, project, prID string) (*IssueReport, error) {
	params := url.Values{}
	params.Set("componentKeys", project)
	params.Set("pullRequest", prID)
	params.Set("resolved", "false")

	issues, err := b.fetchIssues(ctx, params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issues for pull request %s of %s: %w", prID, project, err)
	}

	r := b.issueReport(TypePRIssues, project, issues)
	r.PullRequest = prID
	return r, nil
}

// NewIssues reports the unresolved issues of branch that were raised in
// its new-code period.
func (b *Builder) NewIssues(ctx context.Context, project, branch string) (*IssueReport, error) {
	params := url.Values{}
	params.Set("componentKeys", project)
	setBranch(params, branch)
	params.Set("inNewCodePeriod", "true")
	params.Set("resolved", "false")

	issues, err := b.fetchIssues(ctx, params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch new issues for %s: %w", describeBranch(project, branch), err)
	}

	r := b.issueReport(TypeNewIssues, project, issues)
	r.Branch = branch
	return r, nil
}

// AllIssues reports every open issue of branch. Only issues whose status
// is one of OpenStatuses are kept, whatever the server returns.
func (b *Builder) AllIssues(ctx context.Context, project, branch string) (*IssueReport, error) {
	params := url.Values{}
	params.Set("componentKeys", project)
	setBranch(params, branch)
	params.Set("resolved", "false")
	params.Set("statuses", strings.Join(OpenStatuses, ","))

	issues, err := b.fetchIssues(ctx, params, isOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issues for %s: %w", describeBranch(project, branch), err)
	}

	r := b.issueReport(TypeAllIssues, project, issues)
	r.Branch = branch
	return r, nil
}

// fetchIssues pages through the issue search and converts every element,
// dropping those rejected by keep.
func (b *Builder) fetchIssues(ctx context.Context, params url.Values, keep func(Issue) bool) ([]Issue, error) {
	result, err := b.Client.GetPaginated(ctx, issuesEndpoint, params, "issues")
	if err != nil {
		return nil, err
	}

	issues := make([]Issue, 0, len(result.Items))
	for i, raw := range result.Items {
		var a apiIssue
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("invalid issue at position %d: %w", i, err)
		}
		issue := a.toIssue()
		if keep != nil && !keep(issue) {
			continue
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func (b *Builder) issueReport(t ReportType, project string, issues []Issue) *IssueReport {
	return &IssueReport{
		Header:  b.header(t, project),
		Summary: Summarize(issues),
		Issues:  issues,
	}
}

// Summarize counts issues by severity and type in a single pass. Values
// outside Severities or IssueTypes are counted under their own key so both
// partitions always add up to Total.
func Summarize(issues []Issue) IssueSummary {
	s := IssueSummary{
		BySeverity: make(map[string]int, len(Severities)),
		ByType:     make(map[string]int, len(IssueTypes)),
	}
	for _, sev := range Severities {
		s.BySeverity[sev] = 0
	}
	for _, typ := range IssueTypes {
		s.ByType[typ] = 0
	}

	for _, issue := range issues {
		s.Total++
		s.BySeverity[issue.Severity]++
		s.ByType[issue.Type]++
	}
	return s
}

func isOpen(issue Issue) bool {
	for _, s := range OpenStatuses {
		if issue.Status == s {
			return true
		}
	}
	return false
}

// setBranch adds the branch filter. An empty branch selects the main
// branch on the server side.
func setBranch(params url.Values, branch string) {
	if branch != "" {
		params.Set("branch", branch)
	}
}

func describeBranch(project, branch string) string {
	if branch == "" {
		return project
	}
	return fmt.Sprintf("branch %s of %s", branch, project)
}
