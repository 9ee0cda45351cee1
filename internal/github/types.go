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

// Package github types describe the subset of the contents API response
// surface this client consumes.
package github

import (
	"fmt"

	lenserrors "github.com/sirseerhq/repolens/internal/errors"
	"github.com/sirseerhq/repolens/internal/ratelimit"
)

// EntryType classifies one item of a directory listing.
type EntryType int

const (
	// EntryFile is a regular file.
	EntryFile EntryType = iota
	// EntryDirectory is a subdirectory.
	EntryDirectory
	// EntryOther covers symlinks, submodules, and any type the API adds
	// later. These are excluded from listings and never traversed.
	EntryOther
)

// Entry is one item returned by a single-level directory listing. Path is
// always the full path relative to the repository root, not the leaf name.
type Entry struct {
	Type EntryType
	Path string
}

// contentItem mirrors the fields of a contents API response object that
// this client reads. A directory listing is a JSON array of these; a file
// fetch is a single object with Encoding and Content populated.
type contentItem struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// entryType maps the API's type strings onto EntryType. Symlinks and
// submodules collapse to EntryOther.
func entryType(apiType string) EntryType {
	switch apiType {
	case "file":
		return EntryFile
	case "dir":
		return EntryDirectory
	default:
		return EntryOther
	}
}

// RequestError reports a non-success response from the contents API. It
// carries the status code, the request path, and the rate limit state the
// response advertised, so failures are diagnosable without re-running with
// extra logging.
type RequestError struct {
	StatusCode int
	Path       string
	RateLimit  ratelimit.Snapshot
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	msg := fmt.Sprintf("github api returned status %d for %q", e.StatusCode, e.Path)
	if e.RateLimit.Remaining >= 0 {
		msg += fmt.Sprintf(" (rate limit remaining: %d", e.RateLimit.Remaining)
		if !e.RateLimit.Reset.IsZero() {
			msg += fmt.Sprintf(", resets at %s", e.RateLimit.Reset.Format("15:04:05 MST"))
		}
		msg += ")"
	}
	return msg
}

// Unwrap makes RequestError match errors.Is(err, lenserrors.ErrRequestFailed).
func (e *RequestError) Unwrap() error {
	return lenserrors.ErrRequestFailed
}
