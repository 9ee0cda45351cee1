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

// Package githuburl resolves human-facing GitHub web URLs into canonical
// repository coordinates. The web UI produces several distinct URL shapes
// for what is semantically one reference space (owner, repository, optional
// revision, optional path, file vs directory); this package collapses them
// all into a single RepoRef value so downstream code can accept anything a
// user pasted.
//
// Resolution is a pure function: no network access, no hidden state. URLs
// that do not match a supported shape fail with a sentinel error rather
// than a best-effort guess.
//
// Basic usage:
//
//	ref, err := githuburl.Parse("https://github.com/golang/go/tree/master/src/fmt")
//	if err != nil {
//	    // Handle error
//	}
//	// ref.Owner == "golang", ref.Path == "src/fmt", ref.IsDirectory() == true
package githuburl
