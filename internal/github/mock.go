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
	"net/http"
	"sort"
	"strings"
)

// MockClient is a mock implementation of the Client interface for testing.
// It serves listings and file content out of an in-memory tree derived from
// the Files map, so tests describe a repository as plain path/content pairs.
type MockClient struct {
	// Files maps repository-relative file paths to decoded content.
	// Directories are implied by the paths.
	Files map[string]string

	// Others are paths reported as neither file nor directory (symlinks,
	// submodules); they appear in raw listings with type OTHER.
	Others []string

	// Err, when set, fails every operation.
	Err error

	// Call tracking for verification.
	ListCalls []string
	LastOwner string
	LastRepo  string
	LastRef   string
}

// NewMockClient creates a mock client serving the given file tree.
func NewMockClient(files map[string]string) *MockClient {
	return &MockClient{Files: files}
}

// GetFileContent implements the Client interface.
func (m *MockClient) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	m.track(owner, repo, ref)
	if m.Err != nil {
		return "", m.Err
	}
	content, ok := m.Files[path]
	if !ok {
		return "", &RequestError{StatusCode: http.StatusNotFound, Path: path}
	}
	return content, nil
}

// ListFiles implements the Client interface.
func (m *MockClient) ListFiles(ctx context.Context, owner, repo, path, ref string) ([]string, error) {
	entries, err := m.list(ctx, owner, repo, path, ref)
	if err != nil {
		return nil, err
	}
	return filterEntries(entries, EntryFile), nil
}

// ListDirectories implements the Client interface.
func (m *MockClient) ListDirectories(ctx context.Context, owner, repo, path, ref string) ([]string, error) {
	entries, err := m.list(ctx, owner, repo, path, ref)
	if err != nil {
		return nil, err
	}
	return filterEntries(entries, EntryDirectory), nil
}

// ListFilesRecursive implements the Client interface with the same frontier
// loop as the real client, one list call per directory.
func (m *MockClient) ListFilesRecursive(ctx context.Context, owner, repo, path, ref string) ([]string, error) {
	frontier := []string{path}
	files := []string{}

	for len(frontier) > 0 {
		dir := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		entries, err := m.list(ctx, owner, repo, dir, ref)
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

func (m *MockClient) track(owner, repo, ref string) {
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastRef = ref
}

// list produces a single-level listing of the implied tree.
func (m *MockClient) list(ctx context.Context, owner, repo, path, ref string) ([]Entry, error) {
	m.track(owner, repo, ref)
	m.ListCalls = append(m.ListCalls, path)

	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path = strings.Trim(path, "/")
	if path != "" && !m.dirExists(path) {
		return nil, &RequestError{StatusCode: http.StatusNotFound, Path: path}
	}

	prefix := ""
	if path != "" {
		prefix = path + "/"
	}

	var entries []Entry
	seenDirs := make(map[string]bool)

	appendChild := func(full string, leafType EntryType) {
		rest := strings.TrimPrefix(full, prefix)
		if idx := strings.Index(rest, "/"); idx >= 0 {
			dir := prefix + rest[:idx]
			if !seenDirs[dir] {
				seenDirs[dir] = true
				entries = append(entries, Entry{Type: EntryDirectory, Path: dir})
			}
			return
		}
		entries = append(entries, Entry{Type: leafType, Path: full})
	}

	for _, f := range sortedPaths(m.Files) {
		if strings.HasPrefix(f, prefix) {
			appendChild(f, EntryFile)
		}
	}
	for _, o := range m.Others {
		if strings.HasPrefix(o, prefix) {
			appendChild(o, EntryOther)
		}
	}
	return entries, nil
}

func (m *MockClient) dirExists(path string) bool {
	prefix := path + "/"
	for f := range m.Files {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	for _, o := range m.Others {
		if strings.HasPrefix(o, prefix) {
			return true
		}
	}
	return false
}

func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
