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

// Package testutil provides common test helpers for repolens
package testutil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
)

// contentObject is the wire shape of one contents API item.
type contentObject struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding,omitempty"`
	Content  string `json:"content,omitempty"`
}

// RepoServer is an httptest server that speaks the contents API for one
// synthetic repository tree. It records every listing request so tests can
// assert call counts.
type RepoServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
}

// Requests returns the contents paths requested so far, in order.
func (s *RepoServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// NewRepoServer creates a mock contents API server backed by a file tree.
// files maps repository-relative paths to decoded content; directories are
// implied. others lists paths served with the given non-file types, e.g.
// {"link.txt": "symlink"}.
func NewRepoServer(t *testing.T, files map[string]string, others map[string]string) *RepoServer {
	t.Helper()

	s := &RepoServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Expected path shape: /repos/{owner}/{repo}/contents/{path...}
		parts := strings.SplitN(r.URL.Path, "/contents", 2)
		if len(parts) != 2 || !strings.HasPrefix(r.URL.Path, "/repos/") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			return
		}
		reqPath := strings.Trim(parts[1], "/")

		s.mu.Lock()
		s.requests = append(s.requests, reqPath)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")

		if content, ok := files[reqPath]; ok {
			// Single file: object response with padded base64 content.
			encoded := base64.StdEncoding.EncodeToString([]byte(content))
			_ = json.NewEncoder(w).Encode(contentObject{
				Type:     "file",
				Name:     leaf(reqPath),
				Path:     reqPath,
				Size:     len(content),
				Encoding: "base64",
				Content:  foldBase64(encoded),
			})
			return
		}

		listing := listTree(reqPath, files, others)
		if reqPath != "" && len(listing) == 0 {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(listing)
	}))
	t.Cleanup(s.Close)

	return s
}

// NewRateLimitedServer creates a mock server that rejects every request
// with the given status and an exhausted quota header, the way GitHub
// reports rate limiting.
func NewRateLimitedServer(t *testing.T, statusCode int, resetUnix string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		if resetUnix != "" {
			w.Header().Set("X-RateLimit-Reset", resetUnix)
		}
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

// NewErrorServer creates a mock server that always returns the specified
// status code.
func NewErrorServer(t *testing.T, statusCode int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	}))
	t.Cleanup(server.Close)
	return server
}

// listTree computes the one-level listing of dir from the implied tree.
func listTree(dir string, files map[string]string, others map[string]string) []contentObject {
	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}

	listing := []contentObject{}
	seenDirs := make(map[string]bool)

	add := func(full, leafType string) {
		rest := strings.TrimPrefix(full, prefix)
		if idx := strings.Index(rest, "/"); idx >= 0 {
			sub := prefix + rest[:idx]
			if !seenDirs[sub] {
				seenDirs[sub] = true
				listing = append(listing, contentObject{Type: "dir", Name: leaf(sub), Path: sub})
			}
			return
		}
		listing = append(listing, contentObject{Type: leafType, Name: leaf(full), Path: full})
	}

	for _, f := range sortedKeys(files) {
		if strings.HasPrefix(f, prefix) {
			add(f, "file")
		}
	}
	for _, o := range sortedKeys(others) {
		if strings.HasPrefix(o, prefix) {
			add(o, others[o])
		}
	}
	return listing
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func leaf(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// foldBase64 inserts newlines the way the API pads long base64 bodies.
func foldBase64(s string) string {
	const width = 60
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteString("\n")
		s = s[width:]
	}
	b.WriteString(s)
	b.WriteString("\n")
	return b.String()
}
