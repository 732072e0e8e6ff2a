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

// Package output writes sonar-report results and diagnostics.
//
// Writer serializes exactly one JSON document per invocation, compact or
// indented with two spaces, to standard output or to a file. The document
// is encoded in memory first so that a failed encoding never leaves partial
// JSON behind.
//
// Console writes human diagnostics (debug traces, warnings, errors) to the
// diagnostic stream, colored when it is a terminal. It satisfies
// sonar.Logger so the HTTP client can report pagination warnings through it.
//
// Example usage:
//
//	w, err := output.NewFileWriter("report.json", true)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	if err := w.Write(rep); err != nil {
//	    return err
//	}
package output
