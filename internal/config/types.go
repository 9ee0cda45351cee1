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

// Package config types define the configuration structures used throughout
// repolens. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

import (
	"os"
	"path/filepath"
)

// Config represents the complete configuration for repolens. It
// consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// GitHubConfig contains GitHub-specific settings including API endpoints
// and credential lookup configuration. Custom endpoints make GitHub
// Enterprise deployments configurable.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
	TokenFile       string `yaml:"token_file"`
}

// DefaultsConfig contains default settings for content operations unless
// overridden by command-line flags.
type DefaultsConfig struct {
	// ConcurrentDownloads bounds the number of in-flight file downloads
	// during a pull; listings are always sequential.
	ConcurrentDownloads int `yaml:"concurrent_downloads"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults target public GitHub.com but can be overridden
// for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
			TokenFile:       filepath.Join(os.Getenv("HOME"), ".config", "repolens", "token"),
		},
		Defaults: DefaultsConfig{
			ConcurrentDownloads: 5,
		},
	}
}
