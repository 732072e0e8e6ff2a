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

// Package sonar provides a client for the SonarQube Web API. It wraps
// authenticated GET requests, maps HTTP failures onto the application's
// sentinel errors and walks paginated collection endpoints.
//
// The package includes:
//   - A Client interface for single and paginated GET requests
//   - An HTTP implementation with bearer-token authentication
//   - Mock client for testing
//
// Basic usage:
//
//	client := sonar.NewHTTPClient("https://sonar.example.com", "squ_xxx", 30*time.Second)
//	result, err := client.GetPaginated(ctx, "/api/issues/search", url.Values{
//	    "componentKeys": {"com.example:my-project"},
//	}, "issues")
//	if err != nil {
//	    // Handle error
//	}
//	for _, raw := range result.Items {
//	    // Decode each issue
//	}
package sonar
