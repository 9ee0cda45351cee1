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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/repolens/internal/download"
)

func newPullCommand() *cobra.Command {
	var (
		flags       commonFlags
		destDir     string
		concurrency int
		noProgress  bool
	)

	cmd := &cobra.Command{
		Use:   "pull <url | owner/repo>",
		Short: "Download a repository directory tree to local disk",
		Long: `List every file under the target directory and download each one into
the destination directory, mirroring the repository layout. The subtree
lands directly under --dest: pulling .../tree/main/src writes src/Main.txt
as <dest>/Main.txt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
			defer cancel()

			t, err := resolveTarget(args[0], flags.pathFlag, flags.refFlag, true)
			if err != nil {
				return err
			}

			client, cfg, err := buildClient(flags.configPath, flags.token)
			if err != nil {
				return err
			}
			if flags.resolveDefault && t.refDefaulted {
				branch, err := client.ResolveDefaultBranch(ctx, t.owner, t.repo)
				if err != nil {
					return err
				}
				t.ref = branch
			}
			if concurrency == 0 {
				concurrency = cfg.Defaults.ConcurrentDownloads
			}

			d := download.New(client, concurrency, !noProgress)
			n, err := d.Pull(ctx, t.owner, t.repo, t.path, t.ref, destDir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d files into %s\n", n, destDir)
			return nil
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().StringVarP(&destDir, "dest", "d", ".", "Destination directory for downloaded files")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Concurrent file downloads (default from config)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}
