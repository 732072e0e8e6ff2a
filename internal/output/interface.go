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

// OutputWriter defines the interface for writing a report document.
// This abstraction lets commands write to standard output or a file
// without knowing which.
type OutputWriter interface {
	// Write serializes a single document to the output.
	Write(doc interface{}) error

	// Close closes the underlying writer and releases any resources.
	Close() error
}
