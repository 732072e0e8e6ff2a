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
	"io"

	"github.com/sirseerhq/sonar-report/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// defaultBranch is the branch reported on when --branch is not given.
const defaultBranch = "main"

// globalOptions holds the flags shared by every command.
type globalOptions struct {
	configPath string
	outputPath string
	pretty     bool
	branch     string
	verbose    bool
}

// flagSet returns the global flags bound to o.
func (o *globalOptions) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "Path to the configuration file (default: sonar-config.yaml, then ~/.sonar-report/config.yaml)")
	fs.StringVarP(&o.outputPath, "output", "o", "", "Write the JSON report to this file instead of stdout")
	fs.BoolVar(&o.pretty, "pretty", false, "Indent the JSON report")
	fs.StringVarP(&o.branch, "branch", "b", defaultBranch, "Branch to report on")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Print requests and progress to stderr")
	return fs
}

// newRootCommand builds the command tree writing reports to stdout and
// diagnostics to stderr.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "sonar-report",
		Short: "Export SonarQube issues and coverage as JSON",
		Long: `sonar-report queries a SonarQube server and prints issue and coverage
reports as a single JSON document, for use in scripts and CI pipelines.

The server URL and token are read from sonar-config.yaml (see "sonar-report init")
and can be overridden with the SONAR_URL and SONAR_TOKEN environment variables.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().AddFlagSet(a.opts.flagSet())

	rootCmd.AddCommand(
		newInitCommand(a),
		newPRIssuesCommand(a),
		newNewIssuesCommand(a),
		newAllIssuesCommand(a),
		newCoverageCommand(a),
		newVersionCommand(),
	)

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sonar-report version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("sonar-report %s\n", version.Version)
		},
	}
}
