package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	models "portal/internal/domain/models/docsystem"

	"github.com/stretchr/testify/assert"
)

func TestBuildDocument(t *testing.T) {
	parent := "folder-1"

	tests := []struct {
		name      string
		page      *models.Page
		wantTitle string
		wantText  []string
		notText   []string
	}{
		{
			name: "markdown heading becomes title",
			page: &models.Page{
				ID: "p1", APIID: "api", Name: "intro", Type: models.PageTypeMarkdown, ParentID: &parent,
				Content: "# Getting started\n\nInstall the **client** first.\n\n```sh\nmake install\n```\n",
			},
			wantTitle: "Getting started",
			wantText:  []string{"Getting started", "Install the", "client", "make install"},
			notText:   []string{"**", "```", "#"},
		},
		{
			name: "markdown without heading keeps page name",
			page: &models.Page{
				ID: "p2", APIID: "api", Name: "notes", Type: models.PageTypeMarkdown,
				Content: "plain [link](http://example.com) text",
			},
			wantTitle: "notes",
			wantText:  []string{"plain", "link", "text"},
			notText:   []string{"http://example.com"},
		},
		{
			name: "swagger json info",
			page: &models.Page{
				ID: "p3", APIID: "api", Name: "swagger", Type: models.PageTypeSwagger,
				Content: `{"swagger":"2.0","info":{"title":"Petstore","version":"1.0","description":"Pets API"}}`,
			},
			wantTitle: "Petstore 1.0",
			wantText:  []string{"Pets API"},
		},
		{
			name: "swagger yaml info",
			page: &models.Page{
				ID: "p4", APIID: "api", Name: "m2", Type: models.PageTypeSwagger,
				Content: "openapi: 3.0.0\ninfo:\n  title: Orders\n  description: Order management\n",
			},
			wantTitle: "Orders",
			wantText:  []string{"Order management"},
		},
		{
			name: "unparseable swagger indexed by name",
			page: &models.Page{
				ID: "p5", APIID: "api", Name: "broken", Type: models.PageTypeSwagger,
				Content: "{not: [valid",
			},
			wantTitle: "broken",
		},
		{
			name:      "folder",
			page:      &models.Page{ID: "p6", APIID: "api", Name: "src", Type: models.PageTypeFolder},
			wantTitle: "src",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := BuildDocument(tt.page)

			assert.Equal(t, tt.page.ID, doc.ID)
			assert.Equal(t, tt.page.APIID, doc.APIID)
			assert.Equal(t, tt.page.Name, doc.Name)
			assert.Equal(t, tt.page.Type, doc.Type)
			assert.Equal(t, tt.wantTitle, doc.Title)
			for _, s := range tt.wantText {
				assert.Contains(t, doc.Text, s)
			}
			for _, s := range tt.notText {
				assert.NotContains(t, doc.Text, s)
			}
			if tt.page.ParentID != nil {
				assert.Equal(t, *tt.page.ParentID, doc.ParentID)
			} else {
				assert.Empty(t, doc.ParentID)
			}
		})
	}
}

func TestBuildDocument_TruncatesText(t *testing.T) {
	page := &models.Page{
		ID: "p", APIID: "api", Name: "big", Type: models.PageTypeMarkdown,
		Content: strings.Repeat("word ", maxIndexedText),
	}

	doc := BuildDocument(page)

	assert.Len(t, doc.Text, maxIndexedText)
}

func TestBuildDocument_TruncatesOnRuneBoundary(t *testing.T) {
	page := &models.Page{
		ID: "p", APIID: "api", Name: "accents", Type: models.PageTypeMarkdown,
		Content: "a" + strings.Repeat("é", 40000),
	}

	doc := BuildDocument(page)

	assert.True(t, utf8.ValidString(doc.Text))
	assert.LessOrEqual(t, len(doc.Text), maxIndexedText)
	assert.Greater(t, len(doc.Text), maxIndexedText-utf8.UTFMax)
}

func TestBuildDocument_FrontMatter(t *testing.T) {
	page := &models.Page{
		ID: "p", APIID: "api", Name: "guide", Type: models.PageTypeMarkdown,
		Content: "---\ntitle: Quick start\ndescription: First steps\ntags: [intro, setup]\n---\n# Heading\n\nTwo words.\n",
	}

	doc := BuildDocument(page)

	assert.Equal(t, "Quick start", doc.Title)
	assert.Equal(t, []string{"intro", "setup"}, doc.Tags)
	assert.True(t, strings.HasPrefix(doc.Text, "First steps\n"), doc.Text)
	assert.NotContains(t, doc.Text, "tags:")
	assert.Equal(t, 5, doc.Words) // First steps Heading Two words.
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantMeta bool
		wantBody string
	}{
		{name: "none", content: "# Title\n", wantBody: "# Title\n"},
		{name: "unterminated", content: "---\ntitle: x\n# Title\n", wantBody: "---\ntitle: x\n# Title\n"},
		{name: "invalid yaml", content: "---\ntitle: [x\n---\nbody", wantBody: "---\ntitle: [x\n---\nbody"},
		{name: "crlf", content: "---\r\ntitle: x\r\n---\r\nbody", wantMeta: true, wantBody: "body"},
		{name: "well formed", content: "---\ntitle: x\n---\nbody\n", wantMeta: true, wantBody: "body\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body := splitFrontMatter([]byte(tt.content))

			assert.Equal(t, tt.wantMeta, meta != nil)
			assert.Equal(t, tt.wantBody, string(body))
			if tt.wantMeta {
				assert.Equal(t, "x", meta.Title)
			}
		})
	}
}
