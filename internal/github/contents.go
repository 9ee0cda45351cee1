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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shurcooL/graphql"
	"github.com/sirupsen/logrus"

	lenserrors "github.com/sirseerhq/repolens/internal/errors"
	"github.com/sirseerhq/repolens/internal/ratelimit"
)

const (
	defaultAPIEndpoint     = "https://api.github.com"
	defaultGraphQLEndpoint = "https://api.github.com/graphql"

	// acceptHeader selects the JSON content API version.
	acceptHeader = "application/vnd.github.v3+json"
)

// TokenSource supplies an optional credential at client construction time.
// Returning the empty string means no credential; the client then operates
// unauthenticated. This keeps the "look up a token from local settings"
// behavior injectable for tests instead of being ambient global state.
type TokenSource func() string

// ContentsClient implements the Client interface against GitHub's REST
// contents API. It holds an optional credential for its lifetime; the
// credential is attached as a bearer Authorization header on every request
// and is never logged or included in error messages.
//
// All operations are synchronous: each issues one or more sequential API
// calls and blocks until each completes. Errors are never retried
// internally; retry policy is a caller concern.
type ContentsClient struct {
	apiEndpoint     string
	graphqlEndpoint string
	token           string
	httpClient      *http.Client
	graphqlClient   *graphql.Client
	detector        *ratelimit.Detector
}

// Option configures a ContentsClient during construction.
type Option func(*ContentsClient)

// WithToken sets an explicit credential. An empty string leaves the client
// unauthenticated.
func WithToken(token string) Option {
	return func(c *ContentsClient) {
		c.token = token
	}
}

// WithTokenSource sources the credential from an injectable lookup at
// construction time. A source that yields nothing silently degrades the
// client to unauthenticated mode; this is a deliberate low-friction default,
// not a security-hardened path.
func WithTokenSource(src TokenSource) Option {
	return func(c *ContentsClient) {
		if src != nil {
			c.token = src()
		}
	}
}

// WithAPIEndpoint overrides the REST endpoint, e.g. for GitHub Enterprise
// or a test server.
func WithAPIEndpoint(endpoint string) Option {
	return func(c *ContentsClient) {
		c.apiEndpoint = strings.TrimSuffix(endpoint, "/")
	}
}

// WithGraphQLEndpoint overrides the GraphQL endpoint used for metadata
// queries.
func WithGraphQLEndpoint(endpoint string) Option {
	return func(c *ContentsClient) {
		c.graphqlEndpoint = endpoint
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely. The caller
// then owns header injection; used by tests that wire their own transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *ContentsClient) {
		c.httpClient = client
	}
}

// NewContentsClient creates a client for the GitHub contents API.
// The client is configured with:
//   - Optional bearer authentication (see WithToken / WithTokenSource)
//   - A User-Agent header for API compliance
//   - Response size limiting to prevent memory issues
//   - Connection pooling tuned for api.github.com
func NewContentsClient(opts ...Option) *ContentsClient {
	c := &ContentsClient{
		apiEndpoint:     defaultAPIEndpoint,
		graphqlEndpoint: defaultGraphQLEndpoint,
		detector:        ratelimit.NewDetector(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		transport := &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		}
		c.httpClient = &http.Client{
			Transport: &authTransport{
				token: c.token,
				base:  transport,
			},
		}
	}
	c.graphqlClient = graphql.NewClient(c.graphqlEndpoint, c.httpClient)

	return c
}

// Authenticated reports whether the client holds a credential.
func (c *ContentsClient) Authenticated() bool {
	return c.token != ""
}

// GetFileContent fetches one file's metadata and content and decodes it to
// text. The API must report the content as base64-encoded; anything else
// (binary files, symlinked content) fails with ErrUnsupportedEncoding.
func (c *ContentsClient) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	body, err := c.contentsRequest(ctx, owner, repo, path, ref)
	if err != nil {
		return "", err
	}

	if isJSONArray(body) {
		return "", fmt.Errorf("path %q is a directory, not a file", path)
	}

	var item contentItem
	if err := json.Unmarshal(body, &item); err != nil {
		return "", fmt.Errorf("decoding contents response for %q: %w", path, err)
	}
	if item.Encoding != "base64" {
		return "", fmt.Errorf("file %q has encoding %q: %w", path, item.Encoding, lenserrors.ErrUnsupportedEncoding)
	}

	// The API pads the base64 text with newlines.
	raw, err := base64.StdEncoding.DecodeString(stripWhitespace(item.Content))
	if err != nil {
		return "", fmt.Errorf("decoding base64 content of %q: %w", path, err)
	}
	return string(raw), nil
}

// ListFiles returns the full relative paths of the files directly inside
// path, one level only. Symlinks and submodules are excluded.
func (c *ContentsClient) ListFiles(ctx context.Context, owner, repo, path, ref string) ([]string, error) {
	entries, err := c.listContents(ctx, owner, repo, path, ref)
	if err != nil {
		return nil, err
	}
	return filterEntries(entries, EntryFile), nil
}

// ListDirectories returns the full relative paths of the subdirectories
// directly inside path, one level only.
func (c *ContentsClient) ListDirectories(ctx context.Context, owner, repo, path, ref string) ([]string, error) {
	entries, err := c.listContents(ctx, owner, repo, path, ref)
	if err != nil {
		return nil, err
	}
	return filterEntries(entries, EntryDirectory), nil
}

// listContents performs a single-level listing at path. A response that is
// a single object means path names a file, which is a caller mistake for
// every listing operation and reported as ErrExpectedDirectory.
func (c *ContentsClient) listContents(ctx context.Context, owner, repo, path, ref string) ([]Entry, error) {
	body, err := c.contentsRequest(ctx, owner, repo, path, ref)
	if err != nil {
		return nil, err
	}

	if !isJSONArray(body) {
		return nil, fmt.Errorf("path %q resolves to a file: %w", path, lenserrors.ErrExpectedDirectory)
	}

	var items []contentItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decoding listing for %q: %w", path, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{Type: entryType(item.Type), Path: item.Path})
	}
	return entries, nil
}

// contentsRequest issues one GET against the contents endpoint and returns
// the raw response body, translating non-200 responses into the typed
// error set.
func (c *ContentsClient) contentsRequest(ctx context.Context, owner, repo, path, ref string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.apiEndpoint, url.PathEscape(owner), url.PathEscape(repo), escapePath(path))
	if ref != "" {
		endpoint += "?ref=" + url.QueryEscape(ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building contents request for %q: %w", path, err)
	}
	req.Header.Set("Accept", acceptHeader)

	logrus.WithFields(logrus.Fields{
		"owner": owner,
		"repo":  repo,
		"path":  path,
		"ref":   ref,
	}).Debug("contents api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contents request for %q: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading contents response for %q: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.responseError(resp, path)
	}
	return body, nil
}

// responseError translates a non-200 response. An exhausted quota with no
// credential configured is reported as its own condition with actionable
// guidance instead of a generic HTTP failure.
func (c *ContentsClient) responseError(resp *http.Response, path string) error {
	if c.token == "" && c.detector.IsRateLimited(resp) {
		return fmt.Errorf(
			"request for %q was rejected because the unauthenticated quota is exhausted; provide a token via --token, GITHUB_TOKEN, or a configured token file: %w",
			path, lenserrors.ErrUnauthenticatedRateLimited)
	}
	return &RequestError{
		StatusCode: resp.StatusCode,
		Path:       path,
		RateLimit:  c.detector.Snapshot(resp),
	}
}

// escapePath percent-encodes each path segment while preserving the "/"
// separators; the contents endpoint is path-segment-addressed.
func escapePath(path string) string {
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func filterEntries(entries []Entry, keep EntryType) []string {
	paths := []string{}
	for _, e := range entries {
		if e.Type == keep {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
