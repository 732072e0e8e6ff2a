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

// Package testutil provides common test helpers for sonar-report
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestToken is the token accepted by servers created with NewSonarServer.
const TestToken = "squ_test_token"

// MockServer provides common mock server configurations for testing
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewMockServer creates a mock server that records every request before
// passing it to handler.
func NewMockServer(t *testing.T, handler http.HandlerFunc) *MockServer {
	t.Helper()
	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.Clone(r.Context()))
		m.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// RequestCount returns the number of requests received so far.
func (m *MockServer) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Queries returns the query parameters of every received request in order.
func (m *MockServer) Queries() []url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]url.Values, 0, len(m.requests))
	for _, r := range m.requests {
		out = append(out, r.URL.Query())
	}
	return out
}

// LastRequest returns the most recent request, or nil.
func (m *MockServer) LastRequest() *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// SonarData is the content served by NewSonarServer.
type SonarData struct {
	// Issues served by /api/issues/search, filtered by the statuses
	// parameter and paged by p and ps.
	Issues []map[string]interface{}

	// Measures served by /api/measures/component, filtered by metricKeys.
	Measures []map[string]interface{}

	// LegacyPaging puts total, p and ps at the top level of issue pages
	// instead of under "paging".
	LegacyPaging bool

	// UnknownComponents answer 404 on every endpoint.
	UnknownComponents []string
}

// NewSonarServer creates a mock server that behaves like the parts of the
// SonarQube Web API used by sonar-report. Requests must carry TestToken as
// a bearer token.
func NewSonarServer(t *testing.T, data SonarData) *MockServer {
	t.Helper()

	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+TestToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		component := q.Get("componentKeys")
		if component == "" {
			component = q.Get("component")
		}
		for _, unknown := range data.UnknownComponents {
			if component == unknown {
				writeJSON(w, http.StatusNotFound, map[string]interface{}{
					"errors": []map[string]string{{"msg": "Component key '" + component + "' not found"}},
				})
				return
			}
		}

		switch r.URL.Path {
		case "/api/issues/search":
			writeJSON(w, http.StatusOK, issuesPage(data, q))
		case "/api/measures/component":
			writeJSON(w, http.StatusOK, measuresResponse(data, component, q))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func issuesPage(data SonarData, q url.Values) map[string]interface{} {
	issues := data.Issues
	if statuses := q.Get("statuses"); statuses != "" {
		allowed := strings.Split(statuses, ",")
		filtered := make([]map[string]interface{}, 0, len(issues))
		for _, issue := range issues {
			for _, s := range allowed {
				if issue["status"] == s {
					filtered = append(filtered, issue)
					break
				}
			}
		}
		issues = filtered
	}

	page, _ := strconv.Atoi(q.Get("p"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(q.Get("ps"))
	if size < 1 {
		size = 100
	}

	start := (page - 1) * size
	end := start + size
	if start > len(issues) {
		start = len(issues)
	}
	if end > len(issues) {
		end = len(issues)
	}

	resp := map[string]interface{}{
		"issues": issues[start:end],
	}
	if data.LegacyPaging {
		resp["total"] = len(issues)
		resp["p"] = page
		resp["ps"] = size
	} else {
		resp["paging"] = map[string]interface{}{
			"pageIndex": page,
			"pageSize":  size,
			"total":     len(issues),
		}
	}
	return resp
}

func measuresResponse(data SonarData, component string, q url.Values) map[string]interface{} {
	wanted := make(map[string]bool)
	for _, key := range strings.Split(q.Get("metricKeys"), ",") {
		wanted[key] = true
	}

	measures := make([]map[string]interface{}, 0, len(data.Measures))
	for _, m := range data.Measures {
		if metric, _ := m["metric"].(string); wanted[metric] {
			measures = append(measures, m)
		}
	}

	return map[string]interface{}{
		"component": map[string]interface{}{
			"key":      component,
			"measures": measures,
		},
	}
}

// NewErrorServer creates a mock server that always returns the specified error
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	})
}

// NewSlowServer creates a mock server that answers after delay, or as soon
// as the client gives up.
func NewSlowServer(t *testing.T, delay time.Duration) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
			writeJSON(w, http.StatusOK, map[string]interface{}{})
		case <-r.Context().Done():
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
