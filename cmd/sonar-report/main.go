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
	"errors"
	"io"
	"os"

	reporterrors "github.com/sirseerhq/sonar-report/internal/errors"
	"github.com/sirseerhq/sonar-report/internal/output"
)

// Exit codes
const (
	exitOK = iota
	exitGeneral
	exitAuth
	exitNetwork
	exitNotFound
	exitServer
	exitConfig
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCommand(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.NewConsole(stderr, false, false).Errorf("%v", err)
		return mapErrorToExitCode(err)
	}
	return exitOK
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, reporterrors.ErrAuth):
		return exitAuth
	case errors.Is(err, reporterrors.ErrNetwork):
		return exitNetwork
	case errors.Is(err, reporterrors.ErrNotFound):
		return exitNotFound
	case errors.Is(err, reporterrors.ErrServer):
		return exitServer
	case errors.Is(err, reporterrors.ErrConfig):
		return exitConfig
	default:
		return exitGeneral
	}
}
