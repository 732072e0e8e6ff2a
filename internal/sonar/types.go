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

import "encoding/json"

// Pagination limits
const (
	// PageSize is the number of items requested per page (the server maximum).
	PageSize = 500

	// MaxItems is the hard safety cap on accumulated items. SonarQube refuses
	// to page past 10,000 results on the issues endpoint.
	MaxItems = 10000
)

// PagedResult is the accumulated output of a paginated fetch.
type PagedResult struct {
	// Items holds the raw elements of every fetched page in server order.
	Items []json.RawMessage

	// Total is the collection size reported by the first page.
	Total int

	// Requests is the number of page requests issued.
	Requests int

	// Truncated is set when MaxItems stopped the fetch before the
	// collection was exhausted.
	Truncated bool
}

// Paging is the pagination block of a SonarQube collection response.
type Paging struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

// pageEnvelope captures the paging information of a single page. Current
// servers nest it under "paging"; older ones put total, p and ps at the top
// level.
type pageEnvelope struct {
	Paging *Paging `json:"paging"`
	Total  *int    `json:"total"`
}

func (e pageEnvelope) total() (int, bool) {
	if e.Paging != nil {
		return e.Paging.Total, true
	}
	if e.Total != nil {
		return *e.Total, true
	}
	return 0, false
}
