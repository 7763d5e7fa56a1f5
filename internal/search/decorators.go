package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	models "portal/internal/domain/models/docsystem"
	docsysSvc "portal/internal/domain/services/docsystem"
)

// NopIndexer discards every page. Used when no index is configured.
type NopIndexer struct{}

func (NopIndexer) Index(ctx context.Context, page *models.Page) error { return nil }

// RetryingIndexer retries failed index calls with a linear backoff.
// Retries is the number of extra attempts after the first failure.
type RetryingIndexer struct {
	next    docsysSvc.Indexer
	retries int
	backoff time.Duration
}

// NewRetryingIndexer wraps next
func NewRetryingIndexer(next docsysSvc.Indexer, retries int, backoff time.Duration) *RetryingIndexer {
	if retries < 0 {
		retries = 0
	}
	return &RetryingIndexer{next: next, retries: retries, backoff: backoff}
}

// Index calls the wrapped indexer until it succeeds, retries run out or ctx ends
func (r *RetryingIndexer) Index(ctx context.Context, page *models.Page) error {
	var err error
	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(err, ctx.Err())
			case <-time.After(time.Duration(attempt) * r.backoff):
			}
		}
		if err = r.next.Index(ctx, page); err == nil {
			return nil
		}
	}
	return err
}

// ErrIndexerClosed is returned by AsyncIndexer.Index after Close
var ErrIndexerClosed = errors.New("indexer closed")

// AsyncIndexer hands pages to a background worker and returns immediately.
// Failures are only logged. Close drains the queue.
type AsyncIndexer struct {
	next   docsysSvc.Indexer
	queue  chan models.Page
	log    *slog.Logger
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewAsyncIndexer starts the worker. queueSize bounds the pages waiting to be indexed;
// Index blocks when the queue is full.
func NewAsyncIndexer(next docsysSvc.Indexer, queueSize int, log *slog.Logger) *AsyncIndexer {
	a := &AsyncIndexer{
		next:  next,
		queue: make(chan models.Page, queueSize),
		log:   log.With(slog.String("item", "AsyncIndexer")),
	}
	a.wg.Add(1)
	go a.worker()
	return a
}

// Index enqueues a copy of page
func (a *AsyncIndexer) Index(ctx context.Context, page *models.Page) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrIndexerClosed
	}

	select {
	case a.queue <- *page:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting pages and waits until queued pages are indexed
func (a *AsyncIndexer) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	a.wg.Wait()
	return nil
}

func (a *AsyncIndexer) worker() {
	defer a.wg.Done()
	for page := range a.queue {
		if err := a.next.Index(context.Background(), &page); err != nil {
			a.log.Warn("Cannot index page", slog.String("page_id", page.ID), slog.Any("error", err))
		}
	}
}
