package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	models "portal/internal/domain/models/docsystem"
	docsysSvc "portal/internal/domain/services/docsystem"

	"github.com/redis/go-redis/v9"
)

const (
	keyPage     = "page"  // HASH. page:{id} → document fields
	keyAPIPages = "pages" // SET. pages:{api_id} → page ids
	keySep      = ":"
)

var _ docsysSvc.Indexer = (*RedisIndexer)(nil)

// RedisIndexer stores one hash per page and one set of page ids per API.
// Writing the same page twice overwrites the same keys.
type RedisIndexer struct {
	cl     redis.UniversalClient
	prefix string
	log    *slog.Logger
}

// NewRedisIndexer creates an indexer writing keys under prefix (may be empty)
func NewRedisIndexer(cl redis.UniversalClient, prefix string, log *slog.Logger) *RedisIndexer {
	return &RedisIndexer{
		cl:     cl,
		prefix: prefix,
		log:    log.With(slog.String("item", "RedisIndexer")),
	}
}

// NewRedisClient parses a redis:// URL and checks the server answers
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	cl := redis.NewClient(opts)
	if err := cl.Ping(ctx).Err(); err != nil {
		_ = cl.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return cl, nil
}

// Index writes the page's document in one transaction
func (r *RedisIndexer) Index(ctx context.Context, page *models.Page) error {
	if page.ID == "" {
		return fmt.Errorf("cannot index page without id")
	}
	doc := BuildDocument(page)

	_, err := r.cl.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key(keyPage, doc.ID), documentFields(doc))
		pipe.SAdd(ctx, r.key(keyAPIPages, doc.APIID), doc.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("index page %s: %w", page.ID, err)
	}

	r.log.Debug("Indexed page", slog.String("page_id", doc.ID), slog.String("api_id", doc.APIID))
	return nil
}

func (r *RedisIndexer) key(parts ...string) string {
	key := r.prefix
	for _, p := range parts {
		if key != "" {
			key += keySep
		}
		key += p
	}
	return key
}

// documentFields flattens a document into hash fields
func documentFields(doc *Document) map[string]any {
	return map[string]any{
		"id":        doc.ID,
		"api_id":    doc.APIID,
		"name":      doc.Name,
		"type":      string(doc.Type),
		"parent_id": doc.ParentID,
		"title":     doc.Title,
		"text":      doc.Text,
		"tags":      strings.Join(doc.Tags, ","),
		"words":     doc.Words,
	}
}
