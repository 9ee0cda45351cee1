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

import "context"

// ListFilesRecursive returns every file path at or below path.
//
// The traversal keeps an explicit frontier of pending directories instead
// of recursing through the call stack, so depth is bounded by memory and
// the loop is trivially testable against a mock listing. It is seeded with
// the starting path, and each iteration pops one directory, lists it once,
// collects its files, and pushes its subdirectories. The frontier pops the
// most recently added directory first (depth-first); callers must not
// depend on result order, only on the result set.
//
// Exactly one listing call is made per directory encountered, including
// the root, and none for files. The remote hierarchy is a tree with no
// back-edges, so no visited-set bookkeeping is needed. Entries that are
// neither files nor directories (symlinks, submodules) are never traversed.
//
// The first failing call aborts the whole operation; no partial result is
// returned.
func (c *ContentsClient) ListFilesRecursive(ctx context.Context, owner, repo, path, ref string) ([]string, error) {
	frontier := []string{path}
	files := []string{}

	for len(frontier) > 0 {
		dir := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		entries, err := c.listContents(ctx, owner, repo, dir, ref)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			switch entry.Type {
			case EntryFile:
				files = append(files, entry.Path)
			case EntryDirectory:
				frontier = append(frontier, entry.Path)
			}
		}
	}
	return files, nil
}
