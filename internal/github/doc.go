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

// Package github reads repository content through GitHub's contents API:
// single file fetches, one-level directory listings, and recursive file
// tree traversal. It normalizes results into plain path lists or decoded
// text and translates transport and HTTP failures into a small typed error
// set, including a distinct condition for the unauthenticated rate limit.
//
// The package includes:
//   - A Client interface over the read capability set
//   - ContentsClient, the REST implementation, with optional bearer auth
//   - URL-accepting variants that resolve GitHub web URLs first
//   - A GraphQL metadata query for the true default branch
//   - Mock client for testing
//
// Basic usage:
//
//	client := github.NewContentsClient(github.WithToken(token))
//	files, err := client.ListFilesRecursive(ctx, "golang", "go", "src/fmt", "master")
//	if err != nil {
//	    // Handle error
//	}
//	for _, path := range files {
//	    // Process file path
//	}
package github
