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
	"net"
	"net/http"
	"strings"

	reporterrors "github.com/sirseerhq/sonar-report/internal/errors"
)

// maxErrorBody is how much of an unexpected response body is quoted back.
const maxErrorBody = 200

// apiErrors is the error document SonarQube returns with 4xx responses.
type apiErrors struct {
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// serverMessage extracts the messages of a SonarQube error document, falling
// back to the start of the raw body.
func serverMessage(body []byte) string {
	var doc apiErrors
	if err := json.Unmarshal(body, &doc); err == nil && len(doc.Errors) > 0 {
		msgs := make([]string, 0, len(doc.Errors))
		for _, e := range doc.Errors {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return text
}

// mapStatusError maps a non-2xx response to our domain errors with actionable messages
func (c *HTTPClient) mapStatusError(status int, body []byte, target string) error {
	msg := serverMessage(body)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("server rejected the token (HTTP %d). Check that it is valid, not expired and allowed to browse the project: %w",
			status, reporterrors.ErrAuth)
	case status == http.StatusNotFound:
		if msg != "" {
			return fmt.Errorf("%s (%s): %w", msg, target, reporterrors.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", target, reporterrors.ErrNotFound)
	case status >= 500:
		return fmt.Errorf("server returned HTTP %d for %s: %s: %w", status, target, msg, reporterrors.ErrServer)
	default:
		return fmt.Errorf("unexpected response %d from %s: %s", status, target, msg)
	}
}

// mapTransportError classifies a failure of http.Client.Do. A canceled
// context is returned as-is; everything else is a network failure.
func (c *HTTPClient) mapTransportError(err error, target string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	if isTimeout(err) {
		return fmt.Errorf("request timed out after %s while contacting %s: %w", c.timeout, target, reporterrors.ErrNetwork)
	}

	return fmt.Errorf("unable to reach SonarQube server at %s: %v: %w", c.baseURL, err, reporterrors.ErrNetwork)
}

// mapReadError classifies a failure while reading a response body. An
// oversized body is a general error; a dropped or stalled connection is a
// network failure.
func (c *HTTPClient) mapReadError(err error, target string) error {
	switch {
	case errors.Is(err, errResponseTooLarge):
		return fmt.Errorf("failed to read response from %s: %w", target, err)
	case errors.Is(err, context.Canceled):
		return err
	case isTimeout(err):
		return c.mapTransportError(err, target)
	default:
		return fmt.Errorf("connection to %s failed while reading the response: %v: %w", c.baseURL, err, reporterrors.ErrNetwork)
	}
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}
