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
	"fmt"
	"io"
	"os"
)

// indent is used for every nesting level when pretty printing.
const indent = "  "

// Writer writes JSON documents to an io.Writer.
type Writer struct {
	output    io.Writer
	pretty    bool
	closeFunc func() error
}

// NewWriter creates a writer that writes to w, indenting documents when
// pretty is set.
func NewWriter(w io.Writer, pretty bool) *Writer {
	return &Writer{
		output: w,
		pretty: pretty,
	}
}

// NewFileWriter creates a writer that writes to a file, truncating it if it
// exists. The caller must call Close() when done to ensure the file is
// properly closed.
func NewFileWriter(filename string, pretty bool) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		output:    file,
		pretty:    pretty,
		closeFunc: file.Close,
	}, nil
}

// Write encodes doc and writes it followed by a newline. Nothing is
// written if encoding fails.
func (w *Writer) Write(doc interface{}) error {
	data, err := Encode(doc, w.pretty)
	if err != nil {
		return err
	}

	if _, err := w.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Close closes the underlying writer if it's a file.
func (w *Writer) Close() error {
	if w.closeFunc != nil {
		closeFunc := w.closeFunc
		w.closeFunc = nil
		return closeFunc()
	}
	return nil
}

// Encode returns the JSON encoding of doc with a trailing newline. HTML
// characters are not escaped.
func Encode(doc interface{}, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", indent)
	}

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	return buf.Bytes(), nil
}
