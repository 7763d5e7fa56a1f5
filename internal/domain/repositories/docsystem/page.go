package docsystem

import (
	"context"

	"portal/internal/domain/models/docsystem"
)

// PageFilter narrows ListByAPI results. Nil fields are not applied.
type PageFilter struct {
	Type      *docsystem.PageType
	ParentID  *string // "" selects root-level pages
	Published *bool
	Name      *string // exact match
}

// PageRepository defines data access operations for pages (folders included)
type PageRepository interface {
	// Create inserts the page and fills in its generated ID and timestamps
	Create(ctx context.Context, page *docsystem.Page) error

	// GetByID retrieves a page by ID within an API
	GetByID(ctx context.Context, id, apiID string) (*docsystem.Page, error)

	// ListByAPI lists pages of an API ordered by order, then creation time
	ListByAPI(ctx context.Context, apiID string, filter *PageFilter) ([]docsystem.Page, error)

	// MaxOrder returns the highest order value among the API's pages, 0 when empty
	MaxOrder(ctx context.Context, apiID string) (int, error)
}
