package search

import (
	"context"
	"io"
	"log/slog"
	"time"

	"portal/internal/config"
	docsysSvc "portal/internal/domain/services/docsystem"
)

const (
	retryBackoff   = 200 * time.Millisecond
	asyncQueueSize = 256
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// NewIndexer builds the indexer described by cfg: redis when REDIS_URL is set,
// NopIndexer otherwise, wrapped in retries and optionally a background worker.
// The returned closer drains the worker and closes the redis client.
func NewIndexer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (docsysSvc.Indexer, io.Closer, error) {
	var indexer docsysSvc.Indexer = NopIndexer{}
	closers := []io.Closer{}

	if cfg.RedisURL != "" {
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, client)
		indexer = NewRedisIndexer(client, cfg.TablePrefix+"search", logger)
		logger.Info("search index enabled", "backend", "redis")
	} else {
		logger.Warn("REDIS_URL not set, pages will not be indexed")
	}

	if cfg.IndexRetries > 0 {
		indexer = NewRetryingIndexer(indexer, cfg.IndexRetries, retryBackoff)
	}
	if cfg.IndexAsync {
		async := NewAsyncIndexer(indexer, asyncQueueSize, logger)
		// the worker must drain before the client closes
		closers = append([]io.Closer{async}, closers...)
		indexer = async
	}

	return indexer, closerFunc(func() error {
		var firstErr error
		for _, c := range closers {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}), nil
}
