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

// Command repolens reads files and directory trees from GitHub
// repositories through the contents API.
//
// Subcommands:
//
//	ls    list the files directly inside a directory
//	dirs  list the subdirectories directly inside a directory
//	tree  list every file under a directory recursively
//	cat   print the decoded content of a single file
//	pull  download a directory tree to local disk
//
// Every subcommand accepts either a GitHub web URL (repository root,
// tree, or blob form) or the owner/repo shorthand with --path and --ref.
//
// Exit codes: 0 success, 1 generic failure, 2 usage or quota problems
// the user can fix, 3 network failures.
package main
