package docsystem

import (
	"context"

	models "portal/internal/domain/models/docsystem"
)

// ImportService builds a page tree from a fetcher's directory listing
type ImportService interface {
	// ImportDirectory fetches the source's listing and creates one folder page per
	// distinct directory and one page per supported file. Every created page is indexed.
	// Persistence and fetch failures abort the run; pages created before the failure remain.
	ImportDirectory(ctx context.Context, req *ImportRequest) (*ImportResult, error)
}

// ImportRequest carries the target API, the source to read and the contributor
// stamped on every created page
type ImportRequest struct {
	APIID       string             `json:"-"`
	Source      *models.PageSource `json:"source"`
	Contributor string             `json:"-"`
}

// SkipReason explains why a listed path produced no page
type SkipReason string

const (
	SkipUnsupported     SkipReason = "unsupported_extension"
	SkipDirectoryMarker SkipReason = "directory_marker"
	SkipDegenerate      SkipReason = "degenerate_path"
)

// SkippedPath is a listing entry that produced no page
type SkippedPath struct {
	Path   string     `json:"path"`
	Reason SkipReason `json:"reason"`
}

// ImportResult describes what one import run created
type ImportResult struct {
	RunID         string        `json:"run_id"`
	Folders       []models.Page `json:"folders"` // creation order, parents first
	Pages         []models.Page `json:"pages"`   // listing order
	Skipped       []SkippedPath `json:"skipped"`
	IndexFailures int           `json:"index_failures"`
}

// All returns every created page, folders first
func (r *ImportResult) All() []models.Page {
	all := make([]models.Page, 0, len(r.Folders)+len(r.Pages))
	all = append(all, r.Folders...)
	return append(all, r.Pages...)
}
