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

package main

import (
	"fmt"
	"strings"

	lenserrors "github.com/sirseerhq/repolens/internal/errors"
	"github.com/sirseerhq/repolens/internal/githuburl"
)

// target is the fully resolved form of a command's positional argument:
// repository coordinates plus the path and revision to operate on.
type target struct {
	owner string
	repo  string
	path  string
	ref   string

	// refDefaulted is true when the revision was not named by the user
	// and fell back to the resolver's default branch. Commands use it to
	// decide whether --resolve-default-branch should look up the real
	// default branch.
	refDefaulted bool
}

// resolveTarget interprets a positional argument as either a GitHub web
// URL or the owner/repo shorthand. URLs carry their own path and revision;
// the shorthand takes them from the --path and --ref flags. requireDir
// rejects blob URLs for commands that operate on directories.
func resolveTarget(arg, pathFlag, refFlag string, requireDir bool) (target, error) {
	if strings.Contains(arg, "://") {
		return resolveURLTarget(arg, pathFlag, refFlag, requireDir)
	}
	return resolveShorthandTarget(arg, pathFlag, refFlag)
}

func resolveURLTarget(arg, pathFlag, refFlag string, requireDir bool) (target, error) {
	if pathFlag != "" {
		return target{}, fmt.Errorf("--path cannot be combined with a URL target: %w", lenserrors.ErrInvalidHost)
	}
	if refFlag != "" {
		return target{}, fmt.Errorf("--ref cannot be combined with a URL target: %w", lenserrors.ErrInvalidHost)
	}

	var (
		ref githuburl.RepoRef
		err error
	)
	if requireDir {
		ref, err = githuburl.EnsureDirectory(arg)
	} else {
		ref, err = githuburl.Parse(arg)
	}
	if err != nil {
		return target{}, err
	}

	return target{
		owner:        ref.Owner,
		repo:         ref.Repository,
		path:         ref.Path,
		ref:          ref.Revision,
		refDefaulted: !urlNamesRevision(arg),
	}, nil
}

func resolveShorthandTarget(arg, pathFlag, refFlag string) (target, error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return target{}, fmt.Errorf("target %q: expected <owner>/<repo> or a GitHub URL: %w",
			arg, lenserrors.ErrMissingRepoCoordinates)
	}

	t := target{
		owner: parts[0],
		repo:  parts[1],
		path:  strings.Trim(pathFlag, "/"),
		ref:   refFlag,
	}
	if t.ref == "" {
		t.ref = githuburl.DefaultBranch
		t.refDefaulted = true
	}
	return t, nil
}

// urlNamesRevision reports whether the URL's path carries a tree or blob
// marker, meaning the revision that follows it was chosen by the user
// rather than defaulted by the resolver.
func urlNamesRevision(rawURL string) bool {
	return strings.Contains(rawURL, "/tree/") || strings.Contains(rawURL, "/blob/")
}
