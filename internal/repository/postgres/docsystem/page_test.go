package docsystem

import (
	"testing"

	models "portal/internal/domain/models/docsystem"
	docsysRepo "portal/internal/domain/repositories/docsystem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	markdown := models.PageTypeMarkdown
	root := ""
	parent := "folder-1"
	published := true
	name := "intro"

	tests := []struct {
		name      string
		filter    *docsysRepo.PageFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filter",
			filter:    nil,
			wantWhere: "WHERE api_id = $1\n",
			wantArgs:  []interface{}{"api"},
		},
		{
			name:      "empty filter",
			filter:    &docsysRepo.PageFilter{},
			wantWhere: "WHERE api_id = $1\n",
			wantArgs:  []interface{}{"api"},
		},
		{
			name:      "root pages take no argument",
			filter:    &docsysRepo.PageFilter{ParentID: &root},
			wantWhere: "WHERE api_id = $1 AND parent_id IS NULL\n",
			wantArgs:  []interface{}{"api"},
		},
		{
			name:      "all filters",
			filter:    &docsysRepo.PageFilter{Type: &markdown, ParentID: &parent, Published: &published, Name: &name},
			wantWhere: "WHERE api_id = $1 AND type = $2 AND parent_id = $3 AND published = $4 AND name = $5\n",
			wantArgs:  []interface{}{"api", "MARKDOWN", "folder-1", true, "intro"},
		},
		{
			name:      "name only",
			filter:    &docsysRepo.PageFilter{Name: &name},
			wantWhere: "WHERE api_id = $1 AND name = $2\n",
			wantArgs:  []interface{}{"api", "intro"},
		},
		{
			name:      "placeholders stay dense when a filter is skipped",
			filter:    &docsysRepo.PageFilter{Type: &markdown, Published: &published},
			wantWhere: "WHERE api_id = $1 AND type = $2 AND published = $3\n",
			wantArgs:  []interface{}{"api", "MARKDOWN", true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery("dev_pages", "api", tt.filter)

			assert.Contains(t, query, "FROM dev_pages")
			assert.Contains(t, query, tt.wantWhere)
			assert.Contains(t, query, "ORDER BY sort_order ASC, created_at ASC")
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEncodeSource(t *testing.T) {
	encoded, err := encodeSource(nil)
	require.NoError(t, err)
	assert.Nil(t, encoded)

	encoded, err = encodeSource(&models.PageSource{
		Type:          "github",
		Configuration: []byte(`{"owner":"acme"}`),
		Path:          "/docs/a.md",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"github","configuration":{"owner":"acme"},"path":"/docs/a.md"}`, string(encoded))
}
