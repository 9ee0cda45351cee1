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
	"testing"

	lenserrors "github.com/sirseerhq/repolens/internal/errors"
)

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name       string
		arg        string
		pathFlag   string
		refFlag    string
		requireDir bool
		want       target
		wantErr    error
	}{
		{
			name: "tree URL",
			arg:  "https://github.com/octo/hello/tree/dev/src/util",
			want: target{owner: "octo", repo: "hello", path: "src/util", ref: "dev"},
		},
		{
			name: "bare repository URL defaults the revision",
			arg:  "https://github.com/octo/hello",
			want: target{owner: "octo", repo: "hello", ref: "main", refDefaulted: true},
		},
		{
			name: "blob URL for file commands",
			arg:  "https://github.com/octo/hello/blob/main/pom.xml",
			want: target{owner: "octo", repo: "hello", path: "pom.xml", ref: "main"},
		},
		{
			name:       "blob URL rejected for directory commands",
			arg:        "https://github.com/octo/hello/blob/main/pom.xml",
			requireDir: true,
			wantErr:    lenserrors.ErrExpectedDirectory,
		},
		{
			name:     "shorthand with flags",
			arg:      "octo/hello",
			pathFlag: "src",
			refFlag:  "v1.0",
			want:     target{owner: "octo", repo: "hello", path: "src", ref: "v1.0"},
		},
		{
			name: "shorthand without flags defaults",
			arg:  "octo/hello",
			want: target{owner: "octo", repo: "hello", ref: "main", refDefaulted: true},
		},
		{
			name:     "shorthand path flag trimmed",
			arg:      "octo/hello",
			pathFlag: "/src/util/",
			want:     target{owner: "octo", repo: "hello", path: "src/util", ref: "main", refDefaulted: true},
		},
		{
			name:    "shorthand missing repo",
			arg:     "octo",
			wantErr: lenserrors.ErrMissingRepoCoordinates,
		},
		{
			name:    "shorthand with empty owner",
			arg:     "/hello",
			wantErr: lenserrors.ErrMissingRepoCoordinates,
		},
		{
			name:     "path flag conflicts with URL",
			arg:      "https://github.com/octo/hello",
			pathFlag: "src",
			wantErr:  lenserrors.ErrInvalidHost,
		},
		{
			name:    "ref flag conflicts with URL",
			arg:     "https://github.com/octo/hello",
			refFlag: "dev",
			wantErr: lenserrors.ErrInvalidHost,
		},
		{
			name:    "non-github host",
			arg:     "https://gitlab.com/octo/hello",
			wantErr: lenserrors.ErrInvalidHost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTarget(tt.arg, tt.pathFlag, tt.refFlag, tt.requireDir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveTarget() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTarget() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTarget() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestURLNamesRevision(t *testing.T) {
	if urlNamesRevision("https://github.com/octo/hello") {
		t.Error("bare repository URL should not name a revision")
	}
	if !urlNamesRevision("https://github.com/octo/hello/tree/main") {
		t.Error("tree URL names a revision")
	}
	if !urlNamesRevision("https://github.com/octo/hello/blob/dev/a.txt") {
		t.Error("blob URL names a revision")
	}
}
