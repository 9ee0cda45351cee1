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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/repolens/internal/config"
	lenserrors "github.com/sirseerhq/repolens/internal/errors"
	"github.com/sirseerhq/repolens/internal/github"
	"github.com/sirseerhq/repolens/internal/giterror"
	"github.com/sirseerhq/repolens/pkg/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", describeFailure(err))
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "repolens",
		Short: "Read files and directory trees from GitHub repositories",
		Long: `Repolens resolves GitHub web URLs into repository coordinates and reads
repository content through the GitHub contents API: single files, one-level
directory listings, and recursive file trees.

Targets can be anything the GitHub web UI produces:
  https://github.com/{owner}/{repo}
  https://github.com/{owner}/{repo}/tree/{branch}/{path}
  https://github.com/{owner}/{repo}/blob/{branch}/{path}
or the shorthand {owner}/{repo} combined with --path and --ref flags.

Authentication is optional. A token raises the API quota and is taken from
--token, the GITHUB_TOKEN environment variable, or a configured token file.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newLsCommand(),
		newDirsCommand(),
		newTreeCommand(),
		newCatCommand(),
		newPullCommand(),
	)

	return rootCmd
}

// buildClient assembles the content client from config and flags. An
// explicit --token wins; otherwise the config's token source is consulted
// and its absence silently leaves the client unauthenticated.
func buildClient(configPath, tokenFlag string) (*github.ContentsClient, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	opts := []github.Option{
		github.WithAPIEndpoint(cfg.GitHub.APIEndpoint),
		github.WithGraphQLEndpoint(cfg.GitHub.GraphQLEndpoint),
	}
	if tokenFlag != "" {
		opts = append(opts, github.WithToken(tokenFlag))
	} else {
		opts = append(opts, github.WithTokenSource(github.TokenSource(cfg.TokenSource())))
	}

	return github.NewContentsClient(opts...), cfg, nil
}

// describeFailure attaches user guidance to failures whose cause is not
// obvious from the raw error text.
func describeFailure(err error) error {
	if giterror.NewInspector().IsNetworkError(err) {
		return giterror.WithUserAction(err,
			"Network connection failed. Please check your internet connection and try again")
	}
	return err
}

// mapErrorToExitCode maps internal errors to appropriate exit codes:
// 2 for usage, authentication, and quota problems the user can fix,
// 3 for network failures, 1 for everything else.
func mapErrorToExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, lenserrors.ErrInvalidHost),
		errors.Is(err, lenserrors.ErrMissingRepoCoordinates),
		errors.Is(err, lenserrors.ErrMissingRevision),
		errors.Is(err, lenserrors.ErrMissingBlobPath),
		errors.Is(err, lenserrors.ErrExpectedDirectory),
		errors.Is(err, lenserrors.ErrUnauthenticatedRateLimited):
		return 2
	case errors.Is(err, lenserrors.ErrNetworkFailure),
		giterror.NewInspector().IsNetworkError(err):
		return 3
	default:
		return 1
	}
}
