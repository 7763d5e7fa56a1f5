package services

import (
	"context"

	models "portal/internal/domain/models/docsystem"
	docsysSvc "portal/internal/domain/services/docsystem"
)

// PageVisibility decides whether a reader may see a page.
// Group based exclusion lives behind this predicate.
type PageVisibility interface {
	CanRead(ctx context.Context, reader *docsysSvc.Reader, page *models.Page) bool
}
