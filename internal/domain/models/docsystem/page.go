package docsystem

import (
	"encoding/json"
	"time"
)

// PageType identifies what a page holds
type PageType string

const (
	PageTypeFolder   PageType = "FOLDER"
	PageTypeMarkdown PageType = "MARKDOWN"
	PageTypeSwagger  PageType = "SWAGGER"
)

// IsValid reports whether t is a known page type
func (t PageType) IsValid() bool {
	switch t {
	case PageTypeFolder, PageTypeMarkdown, PageTypeSwagger:
		return true
	}
	return false
}

// PageSource describes where a page's content was fetched from.
// Configuration is the fetcher-specific blob, decoded by the fetcher factory.
type PageSource struct {
	Type          string          `json:"type"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
	Path          string          `json:"path,omitempty"` // entry within the source, set on imported pages
}

type Page struct {
	ID              string      `json:"id" db:"id"`
	APIID           string      `json:"api" db:"api_id"`
	Name            string      `json:"name" db:"name"`
	Type            PageType    `json:"type" db:"type"`
	Content         string      `json:"content,omitempty" db:"content"`
	ParentID        *string     `json:"parent_id" db:"parent_id"` // NULL = root level
	Order           int         `json:"order" db:"sort_order"`
	Published       bool        `json:"published" db:"published"`
	LastContributor string      `json:"last_contributor,omitempty" db:"last_contributor"`
	Source          *PageSource `json:"source,omitempty" db:"source"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// IsFolder reports whether the page is a folder node
func (p *Page) IsFolder() bool {
	return p.Type == PageTypeFolder
}
