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
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/repolens/internal/github"
	"github.com/sirseerhq/repolens/internal/output"
)

// commonFlags are shared by every subcommand.
type commonFlags struct {
	token          string
	configPath     string
	pathFlag       string
	refFlag        string
	outputFile     string
	resolveDefault bool
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags) {
	cmd.Flags().StringVar(&f.token, "token", "", "GitHub API token (overrides GITHUB_TOKEN and the token file)")
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config file")
	cmd.Flags().StringVar(&f.pathFlag, "path", "", "Path inside the repository (owner/repo targets only)")
	cmd.Flags().StringVar(&f.refFlag, "ref", "", "Branch, tag, or commit SHA (owner/repo targets only)")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Write results to file instead of stdout")
	cmd.Flags().BoolVar(&f.resolveDefault, "resolve-default-branch", false,
		"Look up the repository's actual default branch when the target names none (needs a token)")
}

func newOutputWriter(file string) (output.OutputWriter, error) {
	if file != "" {
		return output.NewFileWriter(file)
	}
	return output.NewWriter(os.Stdout), nil
}

// prepare resolves the target and builds the client. When the target left
// the revision to the default and --resolve-default-branch is set, the
// literal default is replaced by the repository's actual default branch.
func prepare(ctx context.Context, arg string, f commonFlags, requireDir bool) (target, *github.ContentsClient, error) {
	t, err := resolveTarget(arg, f.pathFlag, f.refFlag, requireDir)
	if err != nil {
		return target{}, nil, err
	}

	client, _, err := buildClient(f.configPath, f.token)
	if err != nil {
		return target{}, nil, err
	}

	if f.resolveDefault && t.refDefaulted {
		branch, err := client.ResolveDefaultBranch(ctx, t.owner, t.repo)
		if err != nil {
			return target{}, nil, err
		}
		logrus.WithFields(logrus.Fields{
			"owner":  t.owner,
			"repo":   t.repo,
			"branch": branch,
		}).Debug("resolved default branch")
		t.ref = branch
	}

	return t, client, nil
}

// runListing is the shared body of ls, dirs, and tree: resolve the target,
// run one listing operation, and print each result path on its own line.
func runListing(ctx context.Context, arg string, f commonFlags,
	list func(ctx context.Context, client *github.ContentsClient, t target) ([]string, error)) error {

	t, client, err := prepare(ctx, arg, f, true)
	if err != nil {
		return err
	}

	paths, err := list(ctx, client, t)
	if err != nil {
		return err
	}

	writer, err := newOutputWriter(f.outputFile)
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, p := range paths {
		if err := writer.WritePath(p); err != nil {
			return err
		}
	}
	return nil
}
