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

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Compile-time check that Writer implements OutputWriter
var _ OutputWriter = (*Writer)(nil)

type testDoc struct {
	ReportType string            `json:"report_type"`
	Message    string            `json:"message"`
	Counts     map[string]int    `json:"counts"`
	Tags       []string          `json:"tags"`
	Extra      map[string]string `json:"extra,omitempty"`
}

func sampleDoc() testDoc {
	return testDoc{
		ReportType: "pr_issues",
		Message:    "Use <b>&&</b> carefully",
		Counts:     map[string]int{"BUG": 1},
		Tags:       []string{},
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf, true)

	if writer == nil {
		t.Fatal("NewWriter returned nil")
	}
	if writer.output != &buf {
		t.Error("Writer output doesn't match provided buffer")
	}
	if !writer.pretty {
		t.Error("Writer should be in pretty mode")
	}
}

func TestWriter_Write(t *testing.T) {
	tests := []struct {
		name   string
		pretty bool
		want   string
	}{
		{
			name:   "compact",
			pretty: false,
			want:   `{"report_type":"pr_issues","message":"Use <b>&&</b> carefully","counts":{"BUG":1},"tags":[]}` + "\n",
		},
		{
			name:   "pretty",
			pretty: true,
			want: `{
  "report_type": "pr_issues",
  "message": "Use <b>&&</b> carefully",
  "counts": {
    "BUG": 1
  },
  "tags": []
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writer := NewWriter(&buf, tt.pretty)

			if err := writer.Write(sampleDoc()); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("output mismatch:\ngot:  %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestWriter_WriteError(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf, false)

	// A channel can't be marshaled to JSON
	err := writer.Write(map[string]interface{}{"ok": 1, "bad": make(chan int)})
	if err == nil {
		t.Fatal("Expected error when writing non-marshalable data")
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no partial output, got %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_OutputError(t *testing.T) {
	err := NewWriter(failingWriter{}, false).Write(sampleDoc())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Write() error = %v, want disk full", err)
	}
}

func TestNewFileWriter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "report.json")

	writer, err := NewFileWriter(filename, false)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer writer.Close()

	if err := writer.Write(sampleDoc()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	var doc testDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if doc.ReportType != "pr_issues" {
		t.Errorf("report_type = %q, want pr_issues", doc.ReportType)
	}
}

func TestNewFileWriter_Error(t *testing.T) {
	// Try to create file in non-existent directory
	_, err := NewFileWriter(filepath.Join(t.TempDir(), "missing", "report.json"), false)
	if err == nil {
		t.Error("Expected error for non-existent directory, got nil")
	}
}
