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

package report

import (
	"time"

	"github.com/sirseerhq/sonar-report/internal/sonar"
)

// Builder fetches data through a sonar.Client and assembles reports.
type Builder struct {
	Client sonar.Client

	// Now returns the generation time. Defaults to time.Now.
	Now func() time.Time
}

// NewBuilder creates a builder that reads from client.
func NewBuilder(client sonar.Client) *Builder {
	return &Builder{Client: client, Now: time.Now}
}

func (b *Builder) header(t ReportType, project string) Header {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return newHeader(t, project, now())
}
