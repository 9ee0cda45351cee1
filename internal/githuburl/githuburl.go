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

package githuburl

import (
	"fmt"
	"net/url"
	"strings"

	lenserrors "github.com/sirseerhq/repolens/internal/errors"
)

// DefaultBranch is the revision substituted when a URL carries no explicit
// branch segment. GitHub's actual default branch for a repository may differ;
// callers that need the real default should resolve it through a metadata
// call instead of relying on this literal.
const DefaultBranch = "main"

// Kind classifies what a parsed GitHub URL points at.
type Kind string

// The three reference kinds produced by the GitHub web UI.
const (
	// KindRoot is a bare repository URL with no path.
	KindRoot Kind = "root"
	// KindTree is a directory reference (/tree/{rev}/...).
	KindTree Kind = "tree"
	// KindBlob is a single-file reference (/blob/{rev}/...).
	KindBlob Kind = "blob"
)

// RepoRef is the canonical result of resolving a GitHub web URL. It holds
// everything the contents API needs to address a file or directory: owner,
// repository, revision, repository-relative path, and whether the reference
// names a file or a directory.
//
// Path is always normalized: empty string means the repository root, and it
// never carries leading or trailing slashes. A RepoRef is a plain value;
// parsing the same URL twice yields field-for-field equal results.
type RepoRef struct {
	Owner      string
	Repository string
	Revision   string
	Path       string
	Kind       Kind
}

// IsFile reports whether the reference names a single file.
func (r RepoRef) IsFile() bool {
	return r.Kind == KindBlob
}

// IsDirectory reports whether the reference names a directory, including
// the repository root.
func (r RepoRef) IsDirectory() bool {
	return r.Kind == KindRoot || r.Kind == KindTree
}

// String renders the reference in owner/repository@revision:path form for
// log and error messages.
func (r RepoRef) String() string {
	return fmt.Sprintf("%s/%s@%s:%s", r.Owner, r.Repository, r.Revision, r.Path)
}

// Parse resolves a GitHub web URL into a RepoRef. Supported shapes:
//
//	https://github.com/{owner}/{repository}
//	https://github.com/{owner}/{repository}/tree/{revision}
//	https://github.com/{owner}/{repository}/tree/{revision}/{path...}
//	https://github.com/{owner}/{repository}/blob/{revision}/{path...}
//	https://github.com/{owner}/{repository}/{path...}
//
// A bare repository URL and the last (marker-less) shape resolve with the
// DefaultBranch literal as revision. Parsing never guesses: any URL that
// does not match one of these shapes fails with one of the sentinel errors
// from the errors package, wrapped with the offending URL.
func Parse(rawURL string) (RepoRef, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return RepoRef{}, fmt.Errorf("unparseable url %q: %w", rawURL, lenserrors.ErrInvalidHost)
	}

	host := strings.ToLower(u.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return RepoRef{}, fmt.Errorf("host %q in url %q: %w", u.Hostname(), rawURL, lenserrors.ErrInvalidHost)
	}

	// Split on "/" keeping empty segments so positions stay stable; the
	// leading "/" makes segments[0] the empty string. A single trailing
	// slash is cosmetic and normalized away first.
	segments := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")
	if len(segments) < 3 || isBlank(segments[1]) || isBlank(segments[2]) {
		return RepoRef{}, fmt.Errorf("url %q: %w", rawURL, lenserrors.ErrMissingRepoCoordinates)
	}
	owner := segments[1]
	repository := segments[2]

	// Bare repository URL: let the default branch literal stand in.
	if len(segments) == 3 {
		return RepoRef{
			Owner:      owner,
			Repository: repository,
			Revision:   DefaultBranch,
			Path:       "",
			Kind:       KindRoot,
		}, nil
	}

	// Explicit /tree/ or /blob/ marker.
	if marker := segments[3]; marker == "tree" || marker == "blob" {
		if len(segments) < 5 || isBlank(segments[4]) {
			return RepoRef{}, fmt.Errorf("url %q: %w", rawURL, lenserrors.ErrMissingRevision)
		}
		revision := segments[4]
		path := joinSegments(segments[5:])

		kind := KindTree
		if marker == "blob" {
			kind = KindBlob
			if path == "" {
				return RepoRef{}, fmt.Errorf("url %q: %w", rawURL, lenserrors.ErrMissingBlobPath)
			}
		}
		return RepoRef{
			Owner:      owner,
			Repository: repository,
			Revision:   revision,
			Path:       path,
			Kind:       kind,
		}, nil
	}

	// Tolerant fallback: no marker, treat the remaining segments as a plain
	// directory path under the default branch.
	path := joinSegments(segments[3:])
	kind := KindTree
	if path == "" {
		kind = KindRoot
	}
	return RepoRef{
		Owner:      owner,
		Repository: repository,
		Revision:   DefaultBranch,
		Path:       path,
		Kind:       kind,
	}, nil
}

// EnsureDirectory parses a URL and additionally requires that it names a
// directory (repository root or tree). File URLs fail with
// ErrExpectedDirectory; the parsed fields are otherwise returned untouched.
func EnsureDirectory(rawURL string) (RepoRef, error) {
	ref, err := Parse(rawURL)
	if err != nil {
		return RepoRef{}, err
	}
	if ref.IsFile() {
		return RepoRef{}, fmt.Errorf("url %q: %w", rawURL, lenserrors.ErrExpectedDirectory)
	}
	return ref, nil
}

// joinSegments joins path segments with "/", skipping blank segments so
// doubled slashes in the source URL do not leak into the path.
func joinSegments(segments []string) string {
	var b strings.Builder
	for _, s := range segments {
		if isBlank(s) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('/')
		}
		b.WriteString(s)
	}
	return b.String()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
