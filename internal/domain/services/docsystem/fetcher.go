package docsystem

import (
	"context"
	"io"

	models "portal/internal/domain/models/docsystem"
)

// Fetcher reads documentation content from an external source.
// Paths are slash-separated and relative to the source root.
type Fetcher interface {
	// Files returns the flat listing of every path the source exposes.
	// Directory markers end with "/".
	Files(ctx context.Context) ([]string, error)

	// Fetch opens the raw content stored at path. Caller closes the reader.
	Fetch(ctx context.Context, path string) (io.ReadCloser, error)
}

// FetcherResolver builds the Fetcher matching a page source's declared type
type FetcherResolver interface {
	Resolve(source *models.PageSource) (Fetcher, error)
}
