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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrAuth indicates the server rejected the token (HTTP 401 or 403).
	// Maps to exit code 2.
	ErrAuth = errors.New("authentication failed")

	// ErrNetwork indicates a connection failure or a request timeout.
	// Maps to exit code 3.
	ErrNetwork = errors.New("network connection failed")

	// ErrNotFound indicates the project, branch or pull request is unknown to the server.
	// Maps to exit code 4.
	ErrNotFound = errors.New("resource not found")

	// ErrServer indicates the server answered with a 5xx status.
	// Maps to exit code 5.
	ErrServer = errors.New("server error")

	// ErrConfig indicates a missing, malformed or incomplete configuration.
	// Maps to exit code 6.
	ErrConfig = errors.New("invalid configuration")
)
