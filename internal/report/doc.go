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

// Package report builds the JSON reports produced by sonar-report.
//
// A Builder turns SonarQube Web API responses into one of five report
// variants. Issue reports (pr_issues, new_issues, all_issues) carry the
// fetched issues and a summary partitioned by severity and type. Coverage
// reports (coverage, pr_coverage) carry coverage metrics for the whole
// branch and for its new-code period; pull requests only have the latter.
//
// All variants share a Header with the report type, the project key and
// the time the report was generated.
package report
