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
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// newCodePrefix marks the new-code counterpart of a metric.
const newCodePrefix = "new_"

// MetricKeys are the coverage metrics requested for a branch. Each has a
// new-code counterpart named with the new_ prefix.
var MetricKeys = []string{
	"coverage",
	"line_coverage",
	"branch_coverage",
	"lines_to_cover",
	"uncovered_lines",
	"conditions_to_cover",
	"uncovered_conditions",
}

// NewCodeMetricKeys returns MetricKeys with the new_ prefix.
func NewCodeMetricKeys() []string {
	keys := make([]string, len(MetricKeys))
	for i, k := range MetricKeys {
		keys[i] = newCodePrefix + k
	}
	return keys
}

// measure is one element of component.measures in /api/measures/component.
// Depending on the server version a value is carried directly, under
// period, or under the first entry of periods.
type measure struct {
	Metric  string          `json:"metric"`
	Value   json.RawMessage `json:"value"`
	Period  *periodValue    `json:"period"`
	Periods []periodValue   `json:"periods"`
}

type periodValue struct {
	Value json.RawMessage `json:"value"`
}

// valueStrategy returns the raw value of a measure in one encoding, or nil.
type valueStrategy func(m measure) json.RawMessage

// valueStrategies are tried in order; the first non-null value wins.
var valueStrategies = []valueStrategy{
	func(m measure) json.RawMessage { return m.Value },
	func(m measure) json.RawMessage {
		if m.Period == nil {
			return nil
		}
		return m.Period.Value
	},
	func(m measure) json.RawMessage {
		if len(m.Periods) == 0 {
			return nil
		}
		return m.Periods[0].Value
	},
}

// extractValue returns the textual value of m, or false if no strategy
// finds one.
func extractValue(m measure) (string, bool) {
	for _, strategy := range valueStrategies {
		raw := bytes.TrimSpace(strategy(m))
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}

		var s string
		if raw[0] == '"' {
			if err := json.Unmarshal(raw, &s); err != nil {
				return "", false
			}
		} else {
			s = string(raw)
		}
		return s, true
	}
	return "", false
}

// measureValues maps metric keys to their extracted values. Measures
// without a value are left out.
func measureValues(measures []measure) map[string]string {
	values := make(map[string]string, len(measures))
	for _, m := range measures {
		if v, ok := extractValue(m); ok {
			values[m.Metric] = v
		}
	}
	return values
}

// metricsFrom builds CoverageMetrics from values, reading each metric under
// prefix+key.
func metricsFrom(values map[string]string, prefix string) CoverageMetrics {
	return CoverageMetrics{
		Coverage:            percent(values, prefix+"coverage"),
		LineCoverage:        percent(values, prefix+"line_coverage"),
		BranchCoverage:      percent(values, prefix+"branch_coverage"),
		LinesToCover:        count(values, prefix+"lines_to_cover"),
		UncoveredLines:      count(values, prefix+"uncovered_lines"),
		ConditionsToCover:   count(values, prefix+"conditions_to_cover"),
		UncoveredConditions: count(values, prefix+"uncovered_conditions"),
	}
}

func percent(values map[string]string, key string) *float64 {
	v, ok := values[key]
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// count parses an integer metric. Servers sometimes report counts as
// whole floats ("12.0"); anything with a fraction is rejected.
func count(values map[string]string, key string) *int64 {
	v, ok := values[key]
	if !ok {
		return nil
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	n := int64(f)
	return &n
}
