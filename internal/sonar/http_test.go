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
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	reporterrors "github.com/sirseerhq/sonar-report/internal/errors"
	"github.com/sirseerhq/sonar-report/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	debug []string
	warn  []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}

func newTestClient(serverURL string, opts ...Option) *HTTPClient {
	return NewHTTPClient(serverURL, testutil.TestToken, 5*time.Second, opts...)
}

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient("https://sonar.example.com/", "tok", 0)

	assert.Equal(t, "https://sonar.example.com", c.baseURL)
	assert.Equal(t, 30*time.Second, c.client.Timeout)

	var _ Client = c
}

func TestHTTPClient_Get(t *testing.T) {
	server := testutil.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"issues":[],"paging":{"total":0}}`))
	})

	var out map[string]interface{}
	err := newTestClient(server.URL).Get(context.Background(), "/api/issues/search", url.Values{"componentKeys": {"p"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, out["issues"])

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "Bearer "+testutil.TestToken, req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.True(t, strings.HasPrefix(req.Header.Get("User-Agent"), "sonar-report/"))
	assert.Equal(t, "p", req.URL.Query().Get("componentKeys"))
}

func TestHTTPClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, reporterrors.ErrAuth, "401"},
		{"forbidden", http.StatusForbidden, reporterrors.ErrAuth, "403"},
		{"not found", http.StatusNotFound, reporterrors.ErrNotFound, "/api/issues/search"},
		{"internal error", http.StatusInternalServerError, reporterrors.ErrServer, "500"},
		{"unavailable", http.StatusServiceUnavailable, reporterrors.ErrServer, "503"},
		{"bad request", http.StatusBadRequest, nil, "unexpected response 400"},
	}

	sentinels := []error{reporterrors.ErrAuth, reporterrors.ErrNotFound, reporterrors.ErrServer, reporterrors.ErrNetwork}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewErrorServer(t, tt.status)

			var out map[string]interface{}
			err := newTestClient(server.URL).Get(context.Background(), "/api/issues/search", nil, &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			for _, s := range sentinels {
				assert.Equal(t, s == tt.sentinel, errors.Is(err, s), "errors.Is(%v, %v)", err, s)
			}
		})
	}
}

func TestHTTPClient_NotFoundUsesServerMessage(t *testing.T) {
	server := testutil.NewSonarServer(t, testutil.SonarData{UnknownComponents: []string{"nope"}})

	var out map[string]interface{}
	err := newTestClient(server.URL).Get(context.Background(), "/api/measures/component", url.Values{"component": {"nope"}}, &out)

	require.ErrorIs(t, err, reporterrors.ErrNotFound)
	assert.Contains(t, err.Error(), "Component key 'nope' not found")
}

func TestHTTPClient_Timeout(t *testing.T) {
	server := testutil.NewSlowServer(t, 2*time.Second)
	client := NewHTTPClient(server.URL, testutil.TestToken, 50*time.Millisecond)

	var out map[string]interface{}
	err := client.Get(context.Background(), "/api/issues/search", nil, &out)

	require.ErrorIs(t, err, reporterrors.ErrNetwork)
	assert.Contains(t, err.Error(), "timed out")
}

func TestHTTPClient_ConnectionRefused(t *testing.T) {
	server := testutil.NewErrorServer(t, http.StatusOK)
	serverURL := server.URL
	server.Close()

	var out map[string]interface{}
	err := newTestClient(serverURL).Get(context.Background(), "/api/issues/search", nil, &out)

	require.ErrorIs(t, err, reporterrors.ErrNetwork)
	assert.Contains(t, err.Error(), "unable to reach")
}

func TestHTTPClient_ConnectionDroppedMidBody(t *testing.T) {
	server := testutil.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"issues":[`))
		w.(http.Flusher).Flush()

		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Errorf("hijack failed: %v", err)
			return
		}
		conn.Close()
	})

	var out map[string]interface{}
	err := newTestClient(server.URL).Get(context.Background(), "/api/issues/search", nil, &out)

	require.ErrorIs(t, err, reporterrors.ErrNetwork)
	assert.Contains(t, err.Error(), "while reading the response")
}

type fillReader struct{}

func (fillReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = ' '
	}
	return len(p), nil
}

func TestHTTPClient_OversizedBody(t *testing.T) {
	c := newTestClient("http://sonar.invalid", WithTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       io.NopCloser(io.LimitReader(fillReader{}, maxResponseBytes+1)),
			Request:    r,
		}, nil
	})))

	var out map[string]interface{}
	err := c.Get(context.Background(), "/api/issues/search", nil, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded limit")
	assert.NotErrorIs(t, err, reporterrors.ErrNetwork)
}

func TestHTTPClient_CanceledContext(t *testing.T) {
	server := testutil.NewSonarServer(t, testutil.SonarData{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]interface{}
	err := newTestClient(server.URL).Get(ctx, "/api/issues/search", nil, &out)

	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, reporterrors.ErrNetwork)
}

func TestHTTPClient_InvalidJSON(t *testing.T) {
	server := testutil.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>login</html>`))
	})

	var out map[string]interface{}
	err := newTestClient(server.URL).Get(context.Background(), "/api/issues/search", nil, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func issueKeys(t *testing.T, items []json.RawMessage) []string {
	t.Helper()
	keys := make([]string, 0, len(items))
	for _, raw := range items {
		var issue struct {
			Key string `json:"key"`
		}
		require.NoError(t, json.Unmarshal(raw, &issue))
		keys = append(keys, issue.Key)
	}
	return keys
}

func TestGetPaginated(t *testing.T) {
	tests := []struct {
		name         string
		issues       int
		legacy       bool
		wantRequests int
	}{
		{name: "empty collection", issues: 0, wantRequests: 1},
		{name: "single page", issues: 2, wantRequests: 1},
		{name: "exactly one full page", issues: 500, wantRequests: 1},
		{name: "two pages", issues: 750, wantRequests: 2},
		{name: "legacy paging", issues: 1200, legacy: true, wantRequests: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generated := testutil.GenerateIssues(tt.issues)
			server := testutil.NewSonarServer(t, testutil.SonarData{Issues: generated, LegacyPaging: tt.legacy})
			logger := &recordingLogger{}

			result, err := newTestClient(server.URL, WithLogger(logger)).
				GetPaginated(context.Background(), "/api/issues/search", url.Values{"componentKeys": {"p"}}, "issues")
			require.NoError(t, err)

			assert.Len(t, result.Items, tt.issues)
			assert.Equal(t, tt.issues, result.Total)
			assert.Equal(t, tt.wantRequests, result.Requests)
			assert.Equal(t, tt.wantRequests, server.RequestCount())
			assert.False(t, result.Truncated)
			assert.Empty(t, logger.warn)

			keys := issueKeys(t, result.Items)
			for i, key := range keys {
				assert.Equal(t, generated[i]["key"], key, "item %d out of order", i)
			}
		})
	}
}

func TestGetPaginated_QueryParameters(t *testing.T) {
	server := testutil.NewSonarServer(t, testutil.SonarData{Issues: testutil.GenerateIssues(600)})
	params := url.Values{"componentKeys": {"com.example:p"}, "branch": {"main"}}

	_, err := newTestClient(server.URL).GetPaginated(context.Background(), "/api/issues/search", params, "issues")
	require.NoError(t, err)

	queries := server.Queries()
	require.Len(t, queries, 2)
	for i, q := range queries {
		assert.Equal(t, fmt.Sprint(i+1), q.Get("p"))
		assert.Equal(t, "500", q.Get("ps"))
		assert.Equal(t, "com.example:p", q.Get("componentKeys"))
		assert.Equal(t, "main", q.Get("branch"))
	}

	assert.NotContains(t, params, "p", "caller params must not be modified")
}

func TestGetPaginated_SafetyCap(t *testing.T) {
	server := testutil.NewSonarServer(t, testutil.SonarData{Issues: testutil.GenerateIssues(12000)})
	logger := &recordingLogger{}

	result, err := newTestClient(server.URL, WithLogger(logger)).
		GetPaginated(context.Background(), "/api/issues/search", nil, "issues")
	require.NoError(t, err)

	assert.Equal(t, 20, server.RequestCount())
	assert.Equal(t, 20, result.Requests)
	assert.Len(t, result.Items, MaxItems)
	assert.Equal(t, 12000, result.Total)
	assert.True(t, result.Truncated)
	require.Len(t, logger.warn, 1)
	assert.Contains(t, logger.warn[0], "12000")
}

func TestGetPaginated_StopsOnEmptyPage(t *testing.T) {
	server := testutil.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		items := "[]"
		if r.URL.Query().Get("p") == "1" {
			items = `[{"key":"a"},{"key":"b"}]`
		}
		_, _ = fmt.Fprintf(w, `{"issues":%s,"paging":{"pageIndex":1,"pageSize":500,"total":5000}}`, items)
	})

	result, err := newTestClient(server.URL).GetPaginated(context.Background(), "/api/issues/search", nil, "issues")
	require.NoError(t, err)

	assert.Equal(t, 2, server.RequestCount())
	assert.Equal(t, []string{"a", "b"}, issueKeys(t, result.Items))
	assert.False(t, result.Truncated)
}

func TestGetPaginated_ErrorOnLaterPage(t *testing.T) {
	server := testutil.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("p") == "2" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"issues":[{"key":"a"}],"paging":{"pageIndex":1,"pageSize":500,"total":900}}`))
	})

	result, err := newTestClient(server.URL).GetPaginated(context.Background(), "/api/issues/search", nil, "issues")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, reporterrors.ErrServer)
}

func TestGetPaginated_ResultsKeyNotAList(t *testing.T) {
	server := testutil.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"issues":{"key":"a"},"paging":{"total":1}}`))
	})

	_, err := newTestClient(server.URL).GetPaginated(context.Background(), "/api/issues/search", nil, "issues")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a list")
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 500, 1},
		{1, 500, 1},
		{500, 500, 1},
		{501, 500, 2},
		{12000, 500, 24},
	}

	for _, tt := range tests {
		if got := pageCount(tt.total, tt.size); got != tt.want {
			t.Errorf("pageCount(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}
