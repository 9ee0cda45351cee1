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

// Package errors defines sentinel errors for consistent error handling across
// the application. These errors map to specific exit codes in the CLI for
// proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidHost indicates a URL whose host is not github.com.
	// Maps to exit code 2.
	ErrInvalidHost = errors.New("not a github.com url")

	// ErrMissingRepoCoordinates indicates a URL without an owner or
	// repository segment. Maps to exit code 2.
	ErrMissingRepoCoordinates = errors.New("missing owner/repository in url")

	// ErrMissingRevision indicates a /tree/ or /blob/ URL without a
	// revision segment. Maps to exit code 2.
	ErrMissingRevision = errors.New("missing revision segment in url")

	// ErrMissingBlobPath indicates a /blob/ URL that names no file.
	// Maps to exit code 2.
	ErrMissingBlobPath = errors.New("missing file path after blob revision")

	// ErrExpectedDirectory indicates a file URL was passed to an operation
	// that requires a directory. Maps to exit code 2.
	ErrExpectedDirectory = errors.New("url points to a file, not a directory")

	// ErrUnsupportedEncoding indicates file content that is not
	// base64-encoded, typically a binary or LFS-tracked file.
	// Maps to exit code 1.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")

	// ErrRequestFailed indicates a non-success response from the GitHub API.
	// Maps to exit code 1.
	ErrRequestFailed = errors.New("github api request failed")

	// ErrUnauthenticatedRateLimited indicates the unauthenticated API quota
	// is exhausted and no token was configured. Maps to exit code 2.
	ErrUnauthenticatedRateLimited = errors.New("unauthenticated github rate limit exceeded")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")
)
