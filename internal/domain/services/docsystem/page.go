package docsystem

import (
	"context"

	models "portal/internal/domain/models/docsystem"
	docsysRepo "portal/internal/domain/repositories/docsystem"
)

// PageService handles manual page operations
type PageService interface {
	// CreatePage creates a single page placed after every existing page of the API
	CreatePage(ctx context.Context, req *CreatePageRequest) (*models.Page, error)

	// GetPage retrieves a page, subject to the reader's visibility
	GetPage(ctx context.Context, reader *Reader, apiID, pageID string) (*models.Page, error)

	// ListPages lists the pages of an API the reader may see
	ListPages(ctx context.Context, reader *Reader, apiID string, filter *docsysRepo.PageFilter) ([]models.Page, error)
}

// CreatePageRequest is the payload of a manual page creation
type CreatePageRequest struct {
	APIID       string             `json:"-"`
	Name        string             `json:"name"`
	Type        models.PageType    `json:"type"`
	Content     string             `json:"content"`
	ParentID    *string            `json:"parent_id"`
	Published   bool               `json:"published"`
	Source      *models.PageSource `json:"source,omitempty"`
	Contributor string             `json:"-"`
}

// Reader identifies who is reading pages. A nil Reader is anonymous.
type Reader struct {
	UserID string
	Admin  bool
}
