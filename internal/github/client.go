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

	"github.com/sirseerhq/repolens/internal/githuburl"
)

// Client defines the interface for reading repository content.
// This interface allows for easy mocking in tests.
//
// For all operations an empty path means the repository root, and an empty
// ref defers revision selection to the remote service's own default-branch
// resolution.
type Client interface {
	// GetFileContent fetches a single file and returns its decoded text.
	// Binary files (anything not base64-encoded by the API) are rejected.
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error)

	// ListFiles returns the full relative paths of the files directly
	// inside path, one level only.
	ListFiles(ctx context.Context, owner, repo, path, ref string) ([]string, error)

	// ListDirectories returns the full relative paths of the
	// subdirectories directly inside path, one level only.
	ListDirectories(ctx context.Context, owner, repo, path, ref string) ([]string, error)

	// ListFilesRecursive returns the full relative paths of every file at
	// or below path. Callers must not depend on the order of the result,
	// only on its completeness.
	ListFilesRecursive(ctx context.Context, owner, repo, path, ref string) ([]string, error)
}

// GetFileContentFromURL resolves a GitHub web URL and fetches the file it
// names. The URL must be a /blob/ reference; directory URLs fail during
// resolution because a blob reference requires a file path.
func GetFileContentFromURL(ctx context.Context, c Client, rawURL string) (string, error) {
	ref, err := githuburl.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return c.GetFileContent(ctx, ref.Owner, ref.Repository, ref.Path, ref.Revision)
}

// ListFilesFromURL resolves a GitHub web URL and lists the files directly
// inside the directory it names. File URLs fail fast with
// ErrExpectedDirectory instead of producing a confusing empty listing.
func ListFilesFromURL(ctx context.Context, c Client, rawURL string) ([]string, error) {
	ref, err := githuburl.EnsureDirectory(rawURL)
	if err != nil {
		return nil, err
	}
	return c.ListFiles(ctx, ref.Owner, ref.Repository, ref.Path, ref.Revision)
}

// ListDirectoriesFromURL resolves a GitHub web URL and lists the
// subdirectories directly inside the directory it names.
func ListDirectoriesFromURL(ctx context.Context, c Client, rawURL string) ([]string, error) {
	ref, err := githuburl.EnsureDirectory(rawURL)
	if err != nil {
		return nil, err
	}
	return c.ListDirectories(ctx, ref.Owner, ref.Repository, ref.Path, ref.Revision)
}

// ListFilesRecursiveFromURL resolves a GitHub web URL and lists every file
// at or below the directory it names.
func ListFilesRecursiveFromURL(ctx context.Context, c Client, rawURL string) ([]string, error) {
	ref, err := githuburl.EnsureDirectory(rawURL)
	if err != nil {
		return nil, err
	}
	return c.ListFilesRecursive(ctx, ref.Owner, ref.Repository, ref.Path, ref.Revision)
}
