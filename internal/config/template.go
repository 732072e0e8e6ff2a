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

package config

import (
	"errors"
	"fmt"
	"os"

	reporterrors "github.com/sirseerhq/sonar-report/internal/errors"
)

// Template is the example configuration written by `sonar-report init`.
const Template = `server:
  url: "https://sonar.example.com"
  token: "squ_xxxxxxxxxxxx"       # Generate at: <your-sonar-url>/account/security
  timeout: 30s

projects:
  # Human-readable alias: SonarQube project key
  my-project: "com.example:my-project"
  another: "com.example:another-service"
`

// WriteTemplate writes Template to path. It refuses to overwrite an
// existing file since that file usually holds a real token.
func WriteTemplate(path string) error {
	if path == "" {
		path = DefaultFileName
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists. Remove it first or choose a different path: %w", path, reporterrors.ErrConfig)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := file.WriteString(Template); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
