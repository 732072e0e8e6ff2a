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

package testutil

import (
	"fmt"
	"time"
)

// IssueBuilder provides a fluent API for creating test issues in the shape
// returned by /api/issues/search.
type IssueBuilder struct {
	key       string
	rule      string
	severity  string
	issueType string
	component string
	line      *int
	message   string
	effort    string
	status    string
	assignee  *string
	tags      []string
	created   time.Time
}

// NewIssueBuilder creates a new issue builder with defaults
func NewIssueBuilder(key string) *IssueBuilder {
	line := 42
	return &IssueBuilder{
		key:       key,
		rule:      "java:S1234",
		severity:  "MAJOR",
		issueType: "CODE_SMELL",
		component: "com.example:my-project:src/main/java/Foo.java",
		line:      &line,
		message:   fmt.Sprintf("Issue %s", key),
		effort:    "5min",
		status:    "OPEN",
		tags:      []string{},
		created:   time.Date(2026, 2, 23, 10, 0, 0, 0, time.UTC),
	}
}

// WithSeverity sets the severity
func (b *IssueBuilder) WithSeverity(severity string) *IssueBuilder {
	b.severity = severity
	return b
}

// WithType sets the issue type
func (b *IssueBuilder) WithType(issueType string) *IssueBuilder {
	b.issueType = issueType
	return b
}

// WithStatus sets the status
func (b *IssueBuilder) WithStatus(status string) *IssueBuilder {
	b.status = status
	return b
}

// WithAssignee sets the assignee
func (b *IssueBuilder) WithAssignee(login string) *IssueBuilder {
	b.assignee = &login
	return b
}

// WithoutLine removes the line, as for file-level issues
func (b *IssueBuilder) WithoutLine() *IssueBuilder {
	b.line = nil
	return b
}

// WithTags sets the tags
func (b *IssueBuilder) WithTags(tags ...string) *IssueBuilder {
	b.tags = tags
	return b
}

// Build returns the issue as a JSON-ready map. Optional fields are left out
// when unset, like the server does.
func (b *IssueBuilder) Build() map[string]interface{} {
	issue := map[string]interface{}{
		"key":          b.key,
		"rule":         b.rule,
		"severity":     b.severity,
		"type":         b.issueType,
		"component":    b.component,
		"project":      "com.example:my-project",
		"message":      b.message,
		"effort":       b.effort,
		"debt":         b.effort,
		"status":       b.status,
		"tags":         b.tags,
		"creationDate": b.created.Format("2006-01-02T15:04:05-0700"),
	}
	if b.line != nil {
		issue["line"] = *b.line
	}
	if b.assignee != nil {
		issue["assignee"] = *b.assignee
	}
	return issue
}

// GenerateIssues creates n issues cycling through every severity and type.
func GenerateIssues(n int) []map[string]interface{} {
	severities := []string{"BLOCKER", "CRITICAL", "MAJOR", "MINOR", "INFO"}
	types := []string{"BUG", "VULNERABILITY", "CODE_SMELL"}

	issues := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		issues = append(issues, NewIssueBuilder(fmt.Sprintf("AX%05d", i)).
			WithSeverity(severities[i%len(severities)]).
			WithType(types[i%len(types)]).
			Build())
	}
	return issues
}

// Measure builds a measure carrying its value directly.
func Measure(metric, value string) map[string]interface{} {
	return map[string]interface{}{"metric": metric, "value": value}
}

// PeriodMeasure builds a measure in the legacy shape where the new-code
// value is nested under "period".
func PeriodMeasure(metric, value string) map[string]interface{} {
	return map[string]interface{}{
		"metric": metric,
		"period": map[string]interface{}{"index": 1, "value": value},
	}
}

// PeriodsMeasure builds a measure in the pre-8.x shape where new-code values
// are listed under "periods".
func PeriodsMeasure(metric, value string) map[string]interface{} {
	return map[string]interface{}{
		"metric":  metric,
		"periods": []map[string]interface{}{{"index": 1, "value": value}},
	}
}
