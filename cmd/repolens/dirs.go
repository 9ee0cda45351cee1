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
	"time"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/repolens/internal/github"
)

func newDirsCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "dirs <url | owner/repo>",
		Short: "List the subdirectories directly inside a repository directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			return runListing(ctx, args[0], flags,
				func(ctx context.Context, client *github.ContentsClient, t target) ([]string, error) {
					return client.ListDirectories(ctx, t.owner, t.repo, t.path, t.ref)
				})
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}
