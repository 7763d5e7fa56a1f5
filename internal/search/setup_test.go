package search

import (
	"context"
	"testing"

	"portal/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndexer(t *testing.T) {
	tests := []struct {
		name  string
		cfg   *config.Config
		check func(t *testing.T, got interface{})
	}{
		{
			name: "no redis, no retries",
			cfg:  &config.Config{},
			check: func(t *testing.T, got interface{}) {
				assert.IsType(t, NopIndexer{}, got)
			},
		},
		{
			name: "retries wrap the backend",
			cfg:  &config.Config{IndexRetries: 2},
			check: func(t *testing.T, got interface{}) {
				assert.IsType(t, &RetryingIndexer{}, got)
			},
		},
		{
			name: "async outermost",
			cfg:  &config.Config{IndexRetries: 1, IndexAsync: true},
			check: func(t *testing.T, got interface{}) {
				require.IsType(t, &AsyncIndexer{}, got)
				assert.IsType(t, &RetryingIndexer{}, got.(*AsyncIndexer).next)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indexer, closer, err := NewIndexer(context.Background(), tt.cfg, discardLogger())
			require.NoError(t, err)

			tt.check(t, indexer)
			assert.NoError(t, closer.Close())
		})
	}
}

func TestNewIndexer_BadRedisURL(t *testing.T) {
	_, _, err := NewIndexer(context.Background(), &config.Config{RedisURL: "://nope"}, discardLogger())
	assert.Error(t, err)
}
