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
	"fmt"
	"net/url"
	"strings"
)

const measuresEndpoint = "/api/measures/component"

type measuresResponse struct {
	Component struct {
		Key      string    `json:"key"`
		Measures []measure `json:"measures"`
	} `json:"component"`
}

// Coverage reports the coverage of branch, overall and for its new-code
// period, from a single measures request.
func (b *Builder) Coverage(ctx context.Context, project, branch string) (*CoverageReport, error) {
	params := url.Values{}
	params.Set("component", project)
	setBranch(params, branch)
	params.Set("metricKeys", strings.Join(append(append([]string{}, MetricKeys...), NewCodeMetricKeys()...), ","))

	values, err := b.fetchMeasures(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coverage for %s: %w", describeBranch(project, branch), err)
	}

	overall := metricsFrom(values, "")
	return &CoverageReport{
		Header:  b.header(TypeCoverage, project),
		Branch:  branch,
		Metrics: &overall,
		NewCode: metricsFrom(values, newCodePrefix),
	}, nil
}

// PRCoverage reports the new-code coverage of pull request prID. Pull
// requests have no overall metrics.
func (b *Builder) PRCoverage(ctx context.Context, project, prID string) (*CoverageReport, error) {
	params := url.Values{}
	params.Set("component", project)
	params.Set("pullRequest", prID)
	params.Set("metricKeys", strings.Join(NewCodeMetricKeys(), ","))

	values, err := b.fetchMeasures(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coverage for pull request %s of %s: %w", prID, project, err)
	}

	return &CoverageReport{
		Header:      b.header(TypePRCoverage, project),
		PullRequest: prID,
		NewCode:     metricsFrom(values, newCodePrefix),
	}, nil
}

func (b *Builder) fetchMeasures(ctx context.Context, params url.Values) (map[string]string, error) {
	var resp measuresResponse
	if err := b.Client.Get(ctx, measuresEndpoint, params, &resp); err != nil {
		return nil, err
	}
	return measureValues(resp.Component.Measures), nil
}
