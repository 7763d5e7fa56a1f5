package docsystem

import (
	"time"

	models "portal/internal/domain/models/docsystem"
)

// LeafInput carries everything needed to build a leaf page from a classified path
type LeafInput struct {
	APIID       string
	Path        ClassifiedPath
	ParentID    *string
	Content     []byte
	Contributor string
	Order       int
	Source      *models.PageSource
}

// BuildLeafPage builds the page for a supported path.
// Returns false when the path produces no page (unsupported or directory marker).
func BuildLeafPage(in LeafInput) (*models.Page, bool) {
	if !in.Path.Supported() {
		return nil, false
	}

	now := time.Now()
	page := &models.Page{
		APIID:           in.APIID,
		Name:            in.Path.LeafName,
		Type:            in.Path.PageType(),
		Content:         string(in.Content),
		ParentID:        in.ParentID,
		Order:           in.Order,
		LastContributor: in.Contributor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.Source != nil {
		page.Source = &models.PageSource{
			Type:          in.Source.Type,
			Configuration: in.Source.Configuration,
			Path:          in.Path.Path,
		}
	}
	return page, true
}

// buildFolderPage builds the page persisted for a planned folder
func buildFolderPage(apiID string, node *FolderNode, parentID *string, contributor string, order int) *models.Page {
	now := time.Now()
	return &models.Page{
		APIID:           apiID,
		Name:            node.Name,
		Type:            models.PageTypeFolder,
		ParentID:        parentID,
		Order:           order,
		LastContributor: contributor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
