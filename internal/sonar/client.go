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

package sonar

import (
	"context"
	"net/url"
)

// Client defines the interface for interacting with the SonarQube Web API.
// This interface allows for easy mocking in tests.
type Client interface {
	// Get performs a single GET request against endpoint and decodes the
	// JSON response body into out.
	Get(ctx context.Context, endpoint string, params url.Values, out interface{}) error

	// GetPaginated walks every page of a collection endpoint and returns the
	// elements found under resultsKey in server order. Paging parameters are
	// managed by the client and must not be present in params.
	GetPaginated(ctx context.Context, endpoint string, params url.Values, resultsKey string) (*PagedResult, error)
}

// Logger receives diagnostics that are not part of the report payload.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}
