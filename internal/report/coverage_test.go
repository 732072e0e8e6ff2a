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
	"strings"
	"testing"
	"time"

	reporterrors "github.com/sirseerhq/sonar-report/internal/errors"
	"github.com/sirseerhq/sonar-report/internal/sonar"
	"github.com/sirseerhq/sonar-report/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measuresDoc(measures ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"component": map[string]interface{}{
			"key":      "com.example:p",
			"measures": measures,
		},
	}
}

func TestExtractValue(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"direct value", `{"metric":"coverage","value":"85.5"}`, "85.5", true},
		{"period value", `{"metric":"new_coverage","period":{"index":1,"value":"80.1"}}`, "80.1", true},
		{"periods array", `{"metric":"new_coverage","periods":[{"index":1,"value":"77.0"}]}`, "77.0", true},
		{"numeric value", `{"metric":"lines_to_cover","value":120}`, "120", true},
		{"value wins over period", `{"metric":"coverage","value":"90","period":{"value":"10"}}`, "90", true},
		{"null value falls back", `{"metric":"coverage","value":null,"period":{"value":"10"}}`, "10", true},
		{"empty periods", `{"metric":"coverage","periods":[]}`, "", false},
		{"nothing", `{}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m measure
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &m))

			got, ok := extractValue(m)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetricsFrom(t *testing.T) {
	values := map[string]string{
		"coverage":             "85.5",
		"lines_to_cover":       "1200",
		"uncovered_lines":      "12.0",
		"conditions_to_cover":  "3.5",
		"uncovered_conditions": "n/a",
	}

	m := metricsFrom(values, "")

	require.NotNil(t, m.Coverage)
	assert.InDelta(t, 85.5, *m.Coverage, 1e-9)
	require.NotNil(t, m.LinesToCover)
	assert.Equal(t, int64(1200), *m.LinesToCover)
	require.NotNil(t, m.UncoveredLines)
	assert.Equal(t, int64(12), *m.UncoveredLines)

	assert.Nil(t, m.LineCoverage)
	assert.Nil(t, m.BranchCoverage)
	assert.Nil(t, m.ConditionsToCover, "fractional counts are rejected")
	assert.Nil(t, m.UncoveredConditions, "unparseable values are absent")
}

func TestCountRange(t *testing.T) {
	tests := []struct {
		value string
		want  *int64
	}{
		{"9223372036854775807", int64Ptr(9223372036854775807)},
		{"-9223372036854775808", int64Ptr(-9223372036854775808)},
		{"9223372036854775808", nil},
		{"9.3e18", nil},
		{"-1e19", nil},
		{"4e3", int64Ptr(4000)},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := count(map[string]string{"lines_to_cover": tt.value}, "lines_to_cover")
			assert.Equal(t, tt.want, got)
		})
	}
}

func int64Ptr(n int64) *int64 { return &n }

func TestCoverage(t *testing.T) {
	mock := sonar.NewMockClientWithOptions(sonar.WithResponse(measuresEndpoint, measuresDoc(
		testutil.Measure("coverage", "85.5"),
		testutil.Measure("line_coverage", "88.0"),
		testutil.Measure("branch_coverage", "75.2"),
		testutil.Measure("lines_to_cover", "1200"),
		testutil.Measure("uncovered_lines", "144"),
		testutil.Measure("conditions_to_cover", "400"),
		testutil.Measure("uncovered_conditions", "99"),
		testutil.PeriodMeasure("new_coverage", "80.1"),
		testutil.PeriodMeasure("new_lines_to_cover", "30"),
	)))

	r, err := newTestBuilder(mock).Coverage(context.Background(), "com.example:p", "main")
	require.NoError(t, err)

	assert.Equal(t, TypeCoverage, r.Kind())
	assert.Equal(t, "main", r.Branch)
	assert.Empty(t, r.PullRequest)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"report_type": "coverage",
		"project_key": "com.example:p",
		"generated_at": "2026-02-23T10:00:00+00:00",
		"branch": "main",
		"metrics": {
			"coverage": 85.5,
			"line_coverage": 88,
			"branch_coverage": 75.2,
			"lines_to_cover": 1200,
			"uncovered_lines": 144,
			"conditions_to_cover": 400,
			"uncovered_conditions": 99
		},
		"new_code": {
			"coverage": 80.1,
			"lines_to_cover": 30
		}
	}`, string(data))

	assert.Equal(t, measuresEndpoint, mock.LastEndpoint)
	assert.Equal(t, "com.example:p", mock.LastParams.Get("component"))
	assert.Equal(t, "main", mock.LastParams.Get("branch"))
	keys := strings.Split(mock.LastParams.Get("metricKeys"), ",")
	assert.Len(t, keys, 14)
	assert.Subset(t, keys, MetricKeys)
	assert.Subset(t, keys, NewCodeMetricKeys())
}

func TestPRCoverage(t *testing.T) {
	mock := sonar.NewMockClientWithOptions(sonar.WithResponse(measuresEndpoint, measuresDoc(
		testutil.PeriodMeasure("new_coverage", "80.1"),
		testutil.PeriodsMeasure("new_uncovered_lines", "4"),
	)))

	r, err := newTestBuilder(mock).PRCoverage(context.Background(), "com.example:p", "42")
	require.NoError(t, err)

	assert.Equal(t, TypePRCoverage, r.Kind())
	assert.Nil(t, r.Metrics)

	var fields map[string]interface{}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.NotContains(t, fields, "metrics")
	assert.NotContains(t, fields, "branch")
	assert.Equal(t, "42", fields["pull_request"])
	assert.Equal(t, map[string]interface{}{"coverage": 80.1, "uncovered_lines": float64(4)}, fields["new_code"])

	assert.Equal(t, "42", mock.LastParams.Get("pullRequest"))
	assert.Equal(t, strings.Join(NewCodeMetricKeys(), ","), mock.LastParams.Get("metricKeys"))
}

func TestCoverage_NoMeasures(t *testing.T) {
	mock := sonar.NewMockClientWithOptions(sonar.WithResponse(measuresEndpoint, measuresDoc()))

	r, err := newTestBuilder(mock).Coverage(context.Background(), "com.example:p", "main")
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, map[string]interface{}{}, fields["metrics"])
	assert.Equal(t, map[string]interface{}{}, fields["new_code"])
}

func TestCoverage_AgainstServer(t *testing.T) {
	server := testutil.NewSonarServer(t, testutil.SonarData{
		Measures: []map[string]interface{}{
			testutil.Measure("coverage", "85.5"),
			testutil.PeriodMeasure("new_coverage", "80.1"),
		},
		UnknownComponents: []string{"missing"},
	})
	b := newTestBuilder(sonar.NewHTTPClient(server.URL, testutil.TestToken, 5*time.Second))

	r, err := b.PRCoverage(context.Background(), "com.example:p", "42")
	require.NoError(t, err)
	require.NotNil(t, r.NewCode.Coverage)
	assert.InDelta(t, 80.1, *r.NewCode.Coverage, 1e-9)
	assert.Nil(t, r.Metrics)

	_, err = b.Coverage(context.Background(), "missing", "main")
	assert.ErrorIs(t, err, reporterrors.ErrNotFound)
}
