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

func newPRIssuesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pr-issues <project> <pr-id>",
		Short: "Report the unresolved issues of a pull request",
		Long: `Report the unresolved issues of a pull request.

<project> is an alias from the projects section of the configuration or a
raw SonarQube project key.`,
		Example: "  sonar-report pr-issues my-project 42",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prID := args[1]
			return a.runReport(cmd.Context(), args[0], func(ctx context.Context, b *report.Builder, key string) (report.Report, error) {
				a.console().Debugf("Fetching issues for %s pull request %s", key, prID)
				return b.PRIssues(ctx, key, prID)
			})
		},
	}
}

func newNewIssuesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new-issues <project>",
		Short: "Report the issues raised in the new-code period of a branch",
		Example: `  sonar-report new-issues my-project
  sonar-report --branch develop new-issues com.example:my-project`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd.Context(), args[0], func(ctx context.Context, b *report.Builder, key string) (report.Report, error) {
				a.console().Debugf("Fetching new issues for %s on branch '%s'", key, a.opts.branch)
				return b.NewIssues(ctx, key, a.opts.branch)
			})
		},
	}
}

func newAllIssuesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "all-issues <project>",
		Short: "Report every open, confirmed or reopened issue of a branch",
		Long: `Report every open issue of a branch. Only issues in the OPEN, CONFIRMED
and REOPENED statuses are included.

At most 10,000 issues can be fetched. Larger result sets are truncated and a
warning is printed to stderr; the command still succeeds.`,
		Example: "  sonar-report --pretty --output issues.json all-issues my-project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd.Context(), args[0], func(ctx context.Context, b *report.Builder, key string) (report.Report, error) {
				a.console().Debugf("Fetching all issues for %s on branch '%s'", key, a.opts.branch)
				return b.AllIssues(ctx, key, a.opts.branch)
			})
		},
	}
}
