package auth

import (
	"context"

	models "portal/internal/domain/models/docsystem"
	"portal/internal/domain/services"
	docsysSvc "portal/internal/domain/services/docsystem"
)

var _ services.PageVisibility = (*PublishedVisibility)(nil)

// PublishedVisibility lets admins read every page and everyone else only published pages.
// Folders follow the same rule as documents.
type PublishedVisibility struct{}

// NewPublishedVisibility creates the default visibility predicate
func NewPublishedVisibility() *PublishedVisibility {
	return &PublishedVisibility{}
}

// CanRead reports whether reader may see page
func (v *PublishedVisibility) CanRead(ctx context.Context, reader *docsysSvc.Reader, page *models.Page) bool {
	if reader != nil && reader.Admin {
		return true
	}
	return page.Published
}
