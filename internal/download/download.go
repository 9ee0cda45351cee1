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

// Package download materializes a repository directory on local disk.
// The recursive listing stays sequential (the content client's contract);
// only the per-file downloads fan out, over a bounded worker pool so a
// burst of requests cannot amplify rate-limit failures.
package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/sirupsen/logrus"

	"github.com/sirseerhq/repolens/internal/github"
)

// Downloader pulls every file under a repository directory into a local
// directory tree.
type Downloader struct {
	client       github.Client
	concurrency  int
	showProgress bool
}

// New creates a Downloader. concurrency bounds the number of in-flight
// file fetches; values below 1 are treated as 1.
func New(client github.Client, concurrency int, showProgress bool) *Downloader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Downloader{
		client:       client,
		concurrency:  concurrency,
		showProgress: showProgress,
	}
}

// Pull lists every file at or below path and writes each one under destDir,
// mirroring the subtree relative to path. It returns the number of files
// written. The first failure aborts the pull; files written before the
// failure are left on disk.
func (d *Downloader) Pull(ctx context.Context, owner, repo, path, ref, destDir string) (int, error) {
	files, err := d.client.ListFilesRecursive(ctx, owner, repo, path, ref)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}

	var bar *pb.ProgressBar
	if d.showProgress {
		bar = pb.Full.Start(len(files))
		defer bar.Finish()
	}

	base := strings.Trim(path, "/")
	sem := make(chan struct{}, d.concurrency)
	errCh := make(chan error, len(files))
	var wg sync.WaitGroup

	for _, file := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(file string) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := d.pullOne(ctx, owner, repo, file, ref, base, destDir); err != nil {
				errCh <- err
				return
			}
			if bar != nil {
				bar.Increment()
			}
		}(file)
	}
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return 0, err
	}
	return len(files), nil
}

func (d *Downloader) pullOne(ctx context.Context, owner, repo, file, ref, base, destDir string) error {
	content, err := d.client.GetFileContent(ctx, owner, repo, file, ref)
	if err != nil {
		return err
	}

	dest := filepath.Join(destDir, filepath.FromSlash(relativeTo(base, file)))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory for %q: %w", file, err)
	}
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", file, err)
	}

	logrus.WithFields(logrus.Fields{"path": file, "dest": dest}).Debug("downloaded file")
	return nil
}

// relativeTo strips the starting directory from a repo-relative file path
// so the pulled subtree lands directly under the destination directory.
func relativeTo(base, file string) string {
	if base == "" {
		return file
	}
	return strings.TrimPrefix(file, base+"/")
}
