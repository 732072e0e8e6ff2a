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

// Package main implements the sonar-report command-line interface.
// This tool queries a SonarQube server and prints issue and coverage
// reports as a single JSON document, ready for scripts and CI pipelines.
//
// The CLI supports:
//   - Unresolved issues of a pull request (pr-issues)
//   - Issues raised in the new-code period of a branch (new-issues)
//   - Every open issue of a branch (all-issues)
//   - Coverage of a branch or a pull request (coverage)
//   - Generating a template configuration file (init)
//
// Usage:
//
//	sonar-report [--config PATH] [--output PATH] [--pretty] [--branch NAME] [--verbose] <command>
//
// Example:
//
//	export SONAR_TOKEN=squ_xxxxxxxxxxxx
//	sonar-report --pretty pr-issues my-project 42
//
// Exit codes:
//   - 0: Success (including a result truncated at 10,000 items)
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
//   - 4: Project, branch or pull request not found
//   - 5: Server error
//   - 6: Configuration error
package main
