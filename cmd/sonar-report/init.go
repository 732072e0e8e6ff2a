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
	"fmt"

	"github.com/sirseerhq/sonar-report/internal/config"
	"github.com/spf13/cobra"
)

func newInitCommand(a *app) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a template configuration file",
		Long: `Generate a template configuration file with the server URL, the token and
example project aliases. An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(path); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Template written to '%s'.\n", path)
			fmt.Fprintln(a.stdout, "Edit it with your server URL, token and project key mappings.")
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", config.DefaultFileName, "Where to write the template")

	return cmd
}
