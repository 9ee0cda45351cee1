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

	lenserrors "github.com/sirseerhq/repolens/internal/errors"
)

func newCatCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "cat <url | owner/repo>",
		Short: "Print the decoded content of a single repository file",
		Long: `Fetch one file through the contents API, decode it, and print it
exactly as stored in the repository. URL targets use the blob form:

  https://github.com/{owner}/{repo}/blob/{branch}/{path}

For owner/repo targets the file is named with --path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			t, client, err := prepare(ctx, args[0], flags, false)
			if err != nil {
				return err
			}
			if t.path == "" {
				return fmt.Errorf("target %q names no file: %w", args[0], lenserrors.ErrMissingBlobPath)
			}

			content, err := client.GetFileContent(ctx, t.owner, t.repo, t.path, t.ref)
			if err != nil {
				return err
			}

			writer, err := newOutputWriter(flags.outputFile)
			if err != nil {
				return err
			}
			defer writer.Close()

			return writer.WriteContent(content)
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}
