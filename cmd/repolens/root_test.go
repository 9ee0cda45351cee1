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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lenserrors "github.com/sirseerhq/repolens/internal/errors"
	"github.com/sirseerhq/repolens/test/testutil"
)

var repoFixture = map[string]string{
	"pom.xml":             "<project/>",
	"src/Main.txt":        "main body",
	"src/util/Helper.txt": "helper body",
}

// writeTestConfig points the client at a mock server through the --config
// flag so commands run without touching the network.
func writeTestConfig(t *testing.T, apiEndpoint string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := fmt.Sprintf("github:\n  api_endpoint: %s\n", apiEndpoint)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestTreeCommand_EndToEnd(t *testing.T) {
	server := testutil.NewRepoServer(t, repoFixture, nil)
	cfg := writeTestConfig(t, server.URL)
	out := filepath.Join(t.TempDir(), "tree.txt")

	err := runCommand(t,
		"tree", "https://github.com/octo/hello/tree/main/src",
		"--config", cfg, "--output", out)
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	got := strings.TrimSpace(string(data))
	for _, want := range []string{"src/Main.txt", "src/util/Helper.txt"} {
		if !strings.Contains(got, want) {
			t.Errorf("tree output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "pom.xml") {
		t.Errorf("tree of src must not list pom.xml:\n%s", got)
	}
}

func TestLsCommand_ShorthandTarget(t *testing.T) {
	server := testutil.NewRepoServer(t, repoFixture, nil)
	cfg := writeTestConfig(t, server.URL)
	out := filepath.Join(t.TempDir(), "ls.txt")

	err := runCommand(t,
		"ls", "octo/hello", "--path", "src",
		"--config", cfg, "--output", out)
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}

	data, _ := os.ReadFile(out)
	if got := strings.TrimSpace(string(data)); got != "src/Main.txt" {
		t.Errorf("ls output = %q, want src/Main.txt only", got)
	}
}

func TestCatCommand_WritesDecodedContent(t *testing.T) {
	server := testutil.NewRepoServer(t, repoFixture, nil)
	cfg := writeTestConfig(t, server.URL)
	out := filepath.Join(t.TempDir(), "cat.txt")

	err := runCommand(t,
		"cat", "https://github.com/octo/hello/blob/main/src/Main.txt",
		"--config", cfg, "--output", out)
	if err != nil {
		t.Fatalf("cat failed: %v", err)
	}

	data, _ := os.ReadFile(out)
	if string(data) != "main body" {
		t.Errorf("cat output = %q, want %q", data, "main body")
	}
}

func TestCatCommand_RepositoryRootRejected(t *testing.T) {
	err := runCommand(t, "cat", "octo/hello")
	if !errors.Is(err, lenserrors.ErrMissingBlobPath) {
		t.Errorf("cat without a file path: error = %v, want ErrMissingBlobPath", err)
	}
}

func TestPullCommand_EndToEnd(t *testing.T) {
	server := testutil.NewRepoServer(t, repoFixture, nil)
	cfg := writeTestConfig(t, server.URL)
	dest := t.TempDir()

	err := runCommand(t,
		"pull", "https://github.com/octo/hello",
		"--config", cfg, "--dest", dest, "--no-progress")
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "src", "util", "Helper.txt"))
	if err != nil {
		t.Fatalf("pulled file missing: %v", err)
	}
	if string(data) != "helper body" {
		t.Errorf("pulled content = %q, want %q", data, "helper body")
	}
}

func TestCommands_RejectForeignHost(t *testing.T) {
	err := runCommand(t, "ls", "https://gitlab.com/octo/hello")
	if !errors.Is(err, lenserrors.ErrInvalidHost) {
		t.Errorf("foreign host: error = %v, want ErrInvalidHost", err)
	}
	if got := mapErrorToExitCode(err); got != 2 {
		t.Errorf("foreign host exit code = %d, want 2", got)
	}
}

func TestTreeCommand_UnauthenticatedRateLimit(t *testing.T) {
	server := testutil.NewRateLimitedServer(t, 403, "1700000000")
	cfg := writeTestConfig(t, server.URL)

	// Make sure the environment cannot inject a credential.
	t.Setenv("GITHUB_TOKEN", "")

	err := runCommand(t,
		"tree", "https://github.com/octo/hello", "--config", cfg)
	if !errors.Is(err, lenserrors.ErrUnauthenticatedRateLimited) {
		t.Fatalf("error = %v, want ErrUnauthenticatedRateLimited", err)
	}
	if got := mapErrorToExitCode(err); got != 2 {
		t.Errorf("rate limit exit code = %d, want 2", got)
	}
}
