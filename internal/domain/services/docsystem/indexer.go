package docsystem

import (
	"context"

	models "portal/internal/domain/models/docsystem"
)

// Indexer publishes created pages to the search index.
// Implementations must be idempotent: indexing the same page twice is harmless.
type Indexer interface {
	Index(ctx context.Context, page *models.Page) error
}
