// Package static serves files given inline in the source configuration.
package static

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"

	docsysSvc "portal/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SourceType is the registry id of this fetcher
const SourceType = "static"

// Entry is one inline file. A path ending in "/" is a directory marker.
type Entry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Validate implements validation.Validatable
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Path, validation.Required),
	)
}

// Config lists the inline files in the order they are reported
type Config struct {
	Files []Entry `json:"files"`
}

// Validate implements validation.Validatable
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Files, validation.Required),
	)
}

// Fetcher serves a fixed, ordered set of files
type Fetcher struct {
	entries []Entry
	content map[string]string
}

// New creates a fetcher over entries
func New(entries []Entry) *Fetcher {
	content := make(map[string]string, len(entries))
	for _, e := range entries {
		content[e.Path] = e.Content
	}
	return &Fetcher{entries: entries, content: content}
}

// Factory builds a static fetcher from its JSON configuration
func Factory(configuration json.RawMessage) (docsysSvc.Fetcher, error) {
	var cfg Config
	if err := json.Unmarshal(configuration, &cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(cfg.Files), nil
}

// Files returns the entry paths in configuration order
func (f *Fetcher) Files(ctx context.Context) ([]string, error) {
	files := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		files = append(files, e.Path)
	}
	return files, nil
}

// Fetch returns the inline content of path
func (f *Fetcher) Fetch(ctx context.Context, path string) (io.ReadCloser, error) {
	content, ok := f.content[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader([]byte(content))), nil
}
