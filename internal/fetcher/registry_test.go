package fetcher

import (
	"encoding/json"
	"errors"
	"testing"

	"portal/internal/domain"
	models "portal/internal/domain/models/docsystem"
	"portal/internal/fetcher/static"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	registry := NewRegistry()
	registry.Register(static.SourceType, static.Factory)

	tests := []struct {
		name    string
		source  *models.PageSource
		wantErr bool
	}{
		{
			name:    "nil source",
			source:  nil,
			wantErr: true,
		},
		{
			name:    "unknown type",
			source:  &models.PageSource{Type: "ftp"},
			wantErr: true,
		},
		{
			name:    "missing required configuration",
			source:  &models.PageSource{Type: static.SourceType},
			wantErr: true,
		},
		{
			name:    "malformed configuration",
			source:  &models.PageSource{Type: static.SourceType, Configuration: json.RawMessage(`{"files":`)},
			wantErr: true,
		},
		{
			name: "valid configuration",
			source: &models.PageSource{
				Type:          static.SourceType,
				Configuration: json.RawMessage(`{"files":[{"path":"/a.md","content":"# A"}]}`),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := registry.Resolve(tt.source)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrValidation), "error %v should wrap ErrValidation", err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestRegistry_TypesSorted(t *testing.T) {
	registry := NewRegistry()
	registry.Register("static", static.Factory)
	registry.Register("github", static.Factory)
	registry.Register("local", static.Factory)

	assert.Equal(t, []string{"github", "local", "static"}, registry.Types())
}

func TestLoadCatalog_OnlyRegisteredTypes(t *testing.T) {
	registry := NewRegistry()
	registry.Register(static.SourceType, static.Factory)
	registry.Register("local", static.Factory)

	types, err := LoadCatalog(registry)
	require.NoError(t, err)
	require.Len(t, types, 2)

	assert.Equal(t, "local", types[0].ID)
	assert.Equal(t, "static", types[1].ID)
	require.NotEmpty(t, types[0].ConfigKeys)
	assert.Equal(t, "root", types[0].ConfigKeys[0].Key)
	assert.True(t, types[0].ConfigKeys[0].Required)
}
