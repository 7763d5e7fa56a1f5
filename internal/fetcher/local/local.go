// Package local lists and reads a directory tree through an afero filesystem.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	docsysSvc "portal/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/afero"
)

// SourceType is the registry id of this fetcher
const SourceType = "local"

// Config selects the directory to import, relative to the fetch root
type Config struct {
	Root string `json:"root"`
}

// Validate implements validation.Validatable
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
	)
}

// Fetcher reads files below a directory. Paths cannot escape that directory.
type Fetcher struct {
	fs afero.Fs
}

// New creates a fetcher for cfg.Root inside base.
// The root is cleaned as an absolute path, so ".." cannot climb out of base.
func New(base afero.Fs, cfg Config) (*Fetcher, error) {
	root := path.Clean("/" + cfg.Root)

	ok, err := afero.DirExists(base, root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !ok {
		return nil, fmt.Errorf("directory %s does not exist", root)
	}

	return &Fetcher{fs: afero.NewBasePathFs(base, root)}, nil
}

// NewFactory returns a factory building local fetchers jailed to base
func NewFactory(base afero.Fs) func(json.RawMessage) (docsysSvc.Fetcher, error) {
	return func(configuration json.RawMessage) (docsysSvc.Fetcher, error) {
		var cfg Config
		if err := json.Unmarshal(configuration, &cfg); err != nil {
			return nil, fmt.Errorf("decode configuration: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return New(base, cfg)
	}
}

// Files walks the tree in lexical order. Files are listed as "/dir/name",
// empty directories as "/dir/" markers.
func (f *Fetcher) Files(ctx context.Context) ([]string, error) {
	var files []string
	err := afero.Walk(f.fs, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		p = filepath.ToSlash(p)
		if p == "/" {
			return nil
		}
		if !info.IsDir() {
			files = append(files, p)
			return nil
		}

		empty, err := afero.IsEmpty(f.fs, p)
		if err != nil {
			return err
		}
		if empty {
			files = append(files, p+"/")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return files, nil
}

// Fetch opens the file at p
func (f *Fetcher) Fetch(ctx context.Context, p string) (io.ReadCloser, error) {
	name := path.Clean("/" + p)

	info, err := f.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", name)
	}

	return f.fs.Open(name)
}
