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

package github

import (
	"context"
	"fmt"

	"github.com/shurcooL/graphql"
)

// ResolveDefaultBranch queries repository metadata for the actual default
// branch name. URL resolution substitutes a fixed literal when a URL names
// no branch, which silently targets the wrong branch for repositories whose
// default differs; callers that care use this lookup to get the real one.
//
// Note: GitHub's GraphQL endpoint rejects unauthenticated requests, so this
// call requires a credential even though the content reads may not.
func (c *ContentsClient) ResolveDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	var query struct {
		Repository struct {
			DefaultBranchRef struct {
				Name graphql.String
			} `graphql:"defaultBranchRef"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}

	if err := c.graphqlClient.Query(ctx, &query, variables); err != nil {
		return "", fmt.Errorf("resolving default branch of %s/%s: %w", owner, repo, err)
	}

	name := string(query.Repository.DefaultBranchRef.Name)
	if name == "" {
		// Empty repositories have no default branch ref.
		return "", fmt.Errorf("repository %s/%s has no default branch", owner, repo)
	}
	return name, nil
}
