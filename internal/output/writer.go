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

// Package output writes listing and content results to stdout or a file.
// The abstraction keeps command logic independent of where results go.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// OutputWriter defines the interface for writing command results.
type OutputWriter interface {
	// WritePath writes one repository path as its own line.
	WritePath(path string) error

	// WriteContent writes raw file content as-is.
	WriteContent(content string) error

	// Close closes the underlying writer and releases any resources.
	// This should be called when all writing is complete.
	Close() error
}

// Writer writes results to an io.Writer, optionally closing it on Close.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	count     int
	closeFunc func() error
}

// NewWriter creates a writer that writes to the specified output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{output: w}
}

// NewFileWriter creates a writer that writes to a file. The caller must
// call Close() when done to ensure the file is properly closed.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &Writer{
		output:    file,
		closeFunc: file.Close,
	}, nil
}

// WritePath writes one path per line.
func (w *Writer) WritePath(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprintln(w.output, path); err != nil {
		return fmt.Errorf("failed to write path: %w", err)
	}
	w.count++
	return nil
}

// WriteContent writes file content without modification.
func (w *Writer) WriteContent(content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := io.WriteString(w.output, content); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}
	return nil
}

// Count returns the number of paths written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying writer if it's a file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
