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
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	lenserrors "github.com/sirseerhq/repolens/internal/errors"
	"github.com/sirseerhq/repolens/test/testutil"
)

func TestContentsClient_RequestHeaders(t *testing.T) {
	var gotAccept, gotAuth, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	t.Run("with token", func(t *testing.T) {
		client := NewContentsClient(WithAPIEndpoint(server.URL), WithToken("test-token"))
		if _, err := client.ListFiles(context.Background(), "octo", "hello", "", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotAccept != "application/vnd.github.v3+json" {
			t.Errorf("Accept = %q, want the v3 json media type", gotAccept)
		}
		if gotAuth != "Bearer test-token" {
			t.Errorf("Authorization = %q, want Bearer test-token", gotAuth)
		}
		if !strings.HasPrefix(gotUserAgent, "repolens/") {
			t.Errorf("User-Agent = %q, want repolens/<version>", gotUserAgent)
		}
	})

	t.Run("without token", func(t *testing.T) {
		client := NewContentsClient(WithAPIEndpoint(server.URL))
		if _, err := client.ListFiles(context.Background(), "octo", "hello", "", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotAuth != "" {
			t.Errorf("Authorization = %q, want no header without a token", gotAuth)
		}
	})
}

func TestContentsClient_RefParameter(t *testing.T) {
	var gotRef []string
	var gotRawPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRef = r.URL.Query()["ref"]
		gotRawPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewContentsClient(WithAPIEndpoint(server.URL))
	ctx := context.Background()

	t.Run("explicit ref is passed through", func(t *testing.T) {
		if _, err := client.ListFiles(ctx, "octo", "hello", "src", "dev"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(gotRef) != 1 || gotRef[0] != "dev" {
			t.Errorf("ref query = %v, want [dev]", gotRef)
		}
	})

	t.Run("empty ref defers to the remote default", func(t *testing.T) {
		if _, err := client.ListFiles(ctx, "octo", "hello", "src", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(gotRef) != 0 {
			t.Errorf("ref query = %v, want absent", gotRef)
		}
	})

	t.Run("path segments are escaped but separators kept", func(t *testing.T) {
		if _, err := client.ListFiles(ctx, "octo", "hello", "a b/c d", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(gotRawPath, "/contents/a%20b/c%20d") {
			t.Errorf("request path = %q, want escaped segments with literal slash", gotRawPath)
		}
	})
}

func TestContentsClient_GetFileContent(t *testing.T) {
	files := map[string]string{
		"pom.xml":      "<project>hello</project>",
		"src/Main.txt": "content of main",
	}
	server := testutil.NewRepoServer(t, files, nil)
	client := NewContentsClient(WithAPIEndpoint(server.URL))
	ctx := context.Background()

	t.Run("decodes padded base64", func(t *testing.T) {
		got, err := client.GetFileContent(ctx, "octo", "hello", "pom.xml", "main")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != files["pom.xml"] {
			t.Errorf("content = %q, want %q", got, files["pom.xml"])
		}
	})

	t.Run("directory path is rejected", func(t *testing.T) {
		_, err := client.GetFileContent(ctx, "octo", "hello", "src", "main")
		if err == nil || !strings.Contains(err.Error(), "directory") {
			t.Errorf("error = %v, want a directory complaint", err)
		}
	})

	t.Run("missing file returns request error", func(t *testing.T) {
		_, err := client.GetFileContent(ctx, "octo", "hello", "nope.txt", "main")
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("error = %v, want *RequestError", err)
		}
		if reqErr.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", reqErr.StatusCode)
		}
		if !errors.Is(err, lenserrors.ErrRequestFailed) {
			t.Error("RequestError must unwrap to ErrRequestFailed")
		}
	})
}

func TestContentsClient_UnsupportedEncoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"type":     "file",
			"path":     "logo.png",
			"encoding": "none",
			"content":  "",
		})
	}))
	defer server.Close()

	client := NewContentsClient(WithAPIEndpoint(server.URL))
	_, err := client.GetFileContent(context.Background(), "octo", "hello", "logo.png", "")
	if !errors.Is(err, lenserrors.ErrUnsupportedEncoding) {
		t.Errorf("error = %v, want %v", err, lenserrors.ErrUnsupportedEncoding)
	}
}

func TestContentsClient_Listings(t *testing.T) {
	files := map[string]string{
		"README.md":        "readme",
		"pom.xml":          "pom",
		"src/Main.txt":     "main",
		"src/util/Aux.txt": "aux",
		"docs/guide.md":    "guide",
	}
	others := map[string]string{
		"link.txt":   "symlink",
		"vendor/dep": "submodule",
	}
	server := testutil.NewRepoServer(t, files, others)
	client := NewContentsClient(WithAPIEndpoint(server.URL))
	ctx := context.Background()

	t.Run("root files with full paths", func(t *testing.T) {
		got, err := client.ListFiles(ctx, "octo", "hello", "", "main")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"README.md", "pom.xml"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ListFiles = %v, want %v", got, want)
		}
	})

	t.Run("subdirectory files keep repo-relative paths", func(t *testing.T) {
		got, err := client.ListFiles(ctx, "octo", "hello", "src", "main")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"src/Main.txt"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ListFiles = %v, want %v", got, want)
		}
	})

	t.Run("root directories", func(t *testing.T) {
		got, err := client.ListDirectories(ctx, "octo", "hello", "", "main")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"docs", "src", "vendor"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ListDirectories = %v, want %v", got, want)
		}
	})

	t.Run("symlinks and submodules never listed", func(t *testing.T) {
		filesGot, err := client.ListFiles(ctx, "octo", "hello", "", "main")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, p := range filesGot {
			if p == "link.txt" {
				t.Error("symlink leaked into file listing")
			}
		}
		dirsGot, err := client.ListDirectories(ctx, "octo", "hello", "vendor", "main")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, p := range dirsGot {
			if p == "vendor/dep" {
				t.Error("submodule leaked into directory listing")
			}
		}
	})

	t.Run("listing a file path fails with ExpectedDirectory", func(t *testing.T) {
		_, err := client.ListFiles(ctx, "octo", "hello", "pom.xml", "main")
		if !errors.Is(err, lenserrors.ErrExpectedDirectory) {
			t.Errorf("error = %v, want %v", err, lenserrors.ErrExpectedDirectory)
		}
	})
}

func TestContentsClient_ErrorTranslation(t *testing.T) {
	ctx := context.Background()

	t.Run("rate limited without token", func(t *testing.T) {
		server := testutil.NewRateLimitedServer(t, http.StatusForbidden, "1700000000")
		client := NewContentsClient(WithAPIEndpoint(server.URL))

		_, err := client.ListFiles(ctx, "octo", "hello", "", "")
		if !errors.Is(err, lenserrors.ErrUnauthenticatedRateLimited) {
			t.Fatalf("error = %v, want %v", err, lenserrors.ErrUnauthenticatedRateLimited)
		}
		if !strings.Contains(err.Error(), "GITHUB_TOKEN") {
			t.Errorf("error %q should tell the user how to provide a credential", err)
		}
	})

	t.Run("rate limited with token stays generic", func(t *testing.T) {
		server := testutil.NewRateLimitedServer(t, http.StatusForbidden, "1700000000")
		client := NewContentsClient(WithAPIEndpoint(server.URL), WithToken("tok"))

		_, err := client.ListFiles(ctx, "octo", "hello", "", "")
		if errors.Is(err, lenserrors.ErrUnauthenticatedRateLimited) {
			t.Fatal("authenticated rate limit must not report the unauthenticated condition")
		}
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("error = %v, want *RequestError", err)
		}
		if reqErr.RateLimit.Remaining != 0 {
			t.Errorf("Remaining = %d, want 0", reqErr.RateLimit.Remaining)
		}
	})

	t.Run("plain forbidden without quota headers stays generic", func(t *testing.T) {
		server := testutil.NewErrorServer(t, http.StatusForbidden)
		client := NewContentsClient(WithAPIEndpoint(server.URL))

		_, err := client.ListFiles(ctx, "octo", "hello", "", "")
		if errors.Is(err, lenserrors.ErrUnauthenticatedRateLimited) {
			t.Fatal("403 without exhausted quota is not a rate limit")
		}
		if !errors.Is(err, lenserrors.ErrRequestFailed) {
			t.Errorf("error = %v, want %v", err, lenserrors.ErrRequestFailed)
		}
	})

	t.Run("server error carries status", func(t *testing.T) {
		server := testutil.NewErrorServer(t, http.StatusBadGateway)
		client := NewContentsClient(WithAPIEndpoint(server.URL))

		_, err := client.ListFiles(ctx, "octo", "hello", "src", "")
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("error = %v, want *RequestError", err)
		}
		if reqErr.StatusCode != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", reqErr.StatusCode)
		}
		if !strings.Contains(err.Error(), "src") {
			t.Errorf("error %q should name the failing path", err)
		}
	})
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"src", "src"},
		{"src/fmt", "src/fmt"},
		{"a b/c d", "a%20b/c%20d"},
		{"dir/file#1.txt", "dir/file%231.txt"},
	}
	for _, tt := range tests {
		if got := escapePath(tt.in); got != tt.want {
			t.Errorf("escapePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
