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
	"encoding/json"
	"fmt"
	"net/url"

	reporterrors "github.com/sirseerhq/sonar-report/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// Responses maps an endpoint to the document returned by Get.
	Responses map[string]interface{}

	// Items maps an endpoint to the elements returned by GetPaginated.
	Items map[string][]interface{}

	// Truncated is copied into every PagedResult.
	Truncated bool

	// Error to return
	Error error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNetwork  bool
	ShouldFailNotFound bool

	// Track calls for verification
	CallCount    int
	LastEndpoint string
	LastParams   url.Values
}

// NewMockClient creates a mock client with no canned data
func NewMockClient() *MockClient {
	return &MockClient{
		Responses: make(map[string]interface{}),
		Items:     make(map[string][]interface{}),
	}
}

func (m *MockClient) record(ctx context.Context, endpoint string, params url.Values) error {
	m.CallCount++
	m.LastEndpoint = endpoint
	m.LastParams = params

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return fmt.Errorf("server rejected the token (HTTP 401): %w", reporterrors.ErrAuth)
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("request timed out: %w", reporterrors.ErrNetwork)
	}
	if m.ShouldFailNotFound {
		return fmt.Errorf("component not found (%s): %w", endpoint, reporterrors.ErrNotFound)
	}
	return m.Error
}

// Get implements the Client interface
func (m *MockClient) Get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := m.record(ctx, endpoint, params); err != nil {
		return err
	}

	doc, ok := m.Responses[endpoint]
	if !ok {
		doc = map[string]interface{}{}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("mock response for %s: %w", endpoint, err)
	}
	return json.Unmarshal(data, out)
}

// GetPaginated implements the Client interface
func (m *MockClient) GetPaginated(ctx context.Context, endpoint string, params url.Values, resultsKey string) (*PagedResult, error) {
	if err := m.record(ctx, endpoint, params); err != nil {
		return nil, err
	}

	items := m.Items[endpoint]
	result := &PagedResult{
		Items:     make([]json.RawMessage, 0, len(items)),
		Total:     len(items),
		Requests:  pageCount(len(items), PageSize),
		Truncated: m.Truncated,
	}
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("mock item for %s: %w", endpoint, err)
		}
		result.Items = append(result.Items, data)
	}

	return result, nil
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithResponse sets the document returned by Get for endpoint
func WithResponse(endpoint string, doc interface{}) MockClientOption {
	return func(m *MockClient) {
		m.Responses[endpoint] = doc
	}
}

// WithItems sets the elements returned by GetPaginated for endpoint
func WithItems(endpoint string, items ...interface{}) MockClientOption {
	return func(m *MockClient) {
		m.Items[endpoint] = items
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
