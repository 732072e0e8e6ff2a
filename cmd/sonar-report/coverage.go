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

package main

import (
	"context"

	"github.com/sirseerhq/sonar-report/internal/report"
	"github.com/spf13/cobra"
)

func newCoverageCommand(a *app) *cobra.Command {
	var prID string

	cmd := &cobra.Command{
		Use:   "coverage <project>",
		Short: "Report the coverage of a branch or a pull request",
		Long: `Report coverage metrics.

Without --pr, the report covers the branch selected with --branch and holds
both the overall metrics and those of the new-code period. With --pr, only
the new-code metrics of the pull request are reported.

Metrics the server does not report are left out of the output.`,
		Example: `  sonar-report coverage my-project
  sonar-report coverage my-project --pr 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd.Context(), args[0], func(ctx context.Context, b *report.Builder, key string) (report.Report, error) {
				if prID != "" {
					a.console().Debugf("Fetching coverage for %s pull request %s", key, prID)
					return b.PRCoverage(ctx, key, prID)
				}
				a.console().Debugf("Fetching coverage for %s on branch '%s'", key, a.opts.branch)
				return b.Coverage(ctx, key, a.opts.branch)
			})
		},
	}

	cmd.Flags().StringVar(&prID, "pr", "", "Pull request ID (reports new-code coverage of the pull request)")

	return cmd
}
