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
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient implements the Client interface over the SonarQube Web API.
// Requests are issued one at a time; each is bounded by the client timeout.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithLogger routes request traces and pagination warnings to l.
func WithLogger(l Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransport replaces the underlying round tripper. Authentication is
// still applied on top of it.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) {
		if auth, ok := c.client.Transport.(*authTransport); ok && rt != nil {
			auth.base = rt
		}
	}
}

// NewHTTPClient creates a client for the server at baseURL that
// authenticates every request with token. A non-positive timeout falls back
// to 30 seconds.
func NewHTTPClient(baseURL, token string, timeout time.Duration, opts ...Option) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				token: token,
				base:  transport,
			},
		},
		timeout: timeout,
		logger:  nopLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get implements the Client interface.
func (c *HTTPClient) Get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	body, err := c.do(ctx, endpoint, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid JSON response from %s: %w", c.baseURL+endpoint, err)
	}
	return nil
}

// do issues the request and returns the body of a 2xx response.
func (c *HTTPClient) do(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	target := c.baseURL + endpoint
	reqURL := target
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", target, err)
	}

	c.logger.Debugf("GET %s", reqURL)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.mapTransportError(err, target)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.mapReadError(err, target)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.mapStatusError(resp.StatusCode, body, target)
	}

	return body, nil
}

// GetPaginated implements the Client interface. It requests pages of
// PageSize items until the reported total is reached, a page comes back
// empty, or MaxItems have been accumulated. Hitting MaxItems is not an
// error: a warning is logged and the truncated result is returned.
func (c *HTTPClient) GetPaginated(ctx context.Context, endpoint string, params url.Values, resultsKey string) (*PagedResult, error) {
	result := &PagedResult{}
	totalPages := 1

	for page := 1; page <= totalPages; page++ {
		if len(result.Items) >= MaxItems {
			break
		}

		pageParams := cloneValues(params)
		pageParams.Set("p", fmt.Sprint(page))
		pageParams.Set("ps", fmt.Sprint(PageSize))

		body, err := c.do(ctx, endpoint, pageParams)
		if err != nil {
			return nil, err
		}
		result.Requests++

		items, env, err := decodePage(body, resultsKey)
		if err != nil {
			return nil, fmt.Errorf("invalid page %d from %s: %w", page, c.baseURL+endpoint, err)
		}

		if page == 1 {
			total, ok := env.total()
			if !ok {
				total = len(items)
			}
			result.Total = total
			totalPages = pageCount(total, effectivePageSize(env))
			c.logger.Debugf("%s reports %d items across %d pages", endpoint, total, totalPages)
		}

		result.Items = append(result.Items, items...)

		if len(items) == 0 {
			break
		}
	}

	if len(result.Items) >= MaxItems && result.Total > MaxItems {
		result.Truncated = true
		result.Items = result.Items[:MaxItems]
		c.logger.Warnf("result set has %d items but only the first %d can be paged; output is truncated. Narrow the query (branch, pull request) to see the rest",
			result.Total, MaxItems)
	}

	return result, nil
}

// decodePage extracts the result elements and the paging block of one page.
func decodePage(body []byte, resultsKey string) ([]json.RawMessage, pageEnvelope, error) {
	var env pageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, env, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, env, err
	}

	var items []json.RawMessage
	if raw, ok := fields[resultsKey]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, env, fmt.Errorf("field %q is not a list: %w", resultsKey, err)
		}
	}

	return items, env, nil
}

// effectivePageSize prefers the page size echoed by the server, which may
// clamp the requested one.
func effectivePageSize(env pageEnvelope) int {
	if env.Paging != nil && env.Paging.PageSize > 0 && env.Paging.PageSize < PageSize {
		return env.Paging.PageSize
	}
	return PageSize
}

// pageCount returns ceil(total/size), and at least one page.
func pageCount(total, size int) int {
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+2)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
