package docsystem

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	models "portal/internal/domain/models/docsystem"
	docsysRepo "portal/internal/domain/repositories/docsystem"
	"portal/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pageColumns = `id, api_id, parent_id, name, type, content, sort_order, published, last_contributor, source, created_at, updated_at`

// PostgresPageRepository implements the PageRepository interface
type PostgresPageRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewPageRepository creates a new page repository
func NewPageRepository(config *postgres.RepositoryConfig) docsysRepo.PageRepository {
	return &PostgresPageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a page. Zero timestamps are filled in by the database.
func (r *PostgresPageRepository) Create(ctx context.Context, page *models.Page) error {
	source, err := encodeSource(page.Source)
	if err != nil {
		return fmt.Errorf("encode page source: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (api_id, parent_id, name, type, content, sort_order, published, last_contributor, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, r.tables.Pages)

	executor := postgres.GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		page.APIID,
		page.ParentID,
		page.Name,
		string(page.Type),
		page.Content,
		page.Order,
		page.Published,
		page.LastContributor,
		source,
	).Scan(&page.ID, &page.CreatedAt, &page.UpdatedAt)

	return postgres.TranslateError(err, "create page", page.Name)
}

// GetByID retrieves a page by ID within an API
func (r *PostgresPageRepository) GetByID(ctx context.Context, id, apiID string) (*models.Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND api_id = $2
	`, pageColumns, r.tables.Pages)

	executor := postgres.GetExecutor(ctx, r.pool)
	page, err := scanPage(executor.QueryRow(ctx, query, id, apiID))
	if err != nil {
		return nil, postgres.TranslateError(err, "get page", id)
	}

	return page, nil
}

// ListByAPI lists an API's pages ordered by sort order, then creation time
func (r *PostgresPageRepository) ListByAPI(ctx context.Context, apiID string, filter *docsysRepo.PageFilter) ([]models.Page, error) {
	query, args := buildListQuery(r.tables.Pages, apiID, filter)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	pages := []models.Page{}
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, *page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}

	return pages, nil
}

// MaxOrder returns the highest sort order of the API's pages, 0 when it has none
func (r *PostgresPageRepository) MaxOrder(ctx context.Context, apiID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(sort_order), 0)
		FROM %s
		WHERE api_id = $1
	`, r.tables.Pages)

	var maxOrder int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, apiID).Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("max page order: %w", err)
	}
	return maxOrder, nil
}

// buildListQuery renders the list statement for the filters that are set
func buildListQuery(table, apiID string, filter *docsysRepo.PageFilter) (string, []interface{}) {
	conditions := []string{"api_id = $1"}
	args := []interface{}{apiID}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter != nil {
		if filter.Type != nil {
			add("type = $%d", string(*filter.Type))
		}
		if filter.ParentID != nil {
			if *filter.ParentID == "" {
				conditions = append(conditions, "parent_id IS NULL")
			} else {
				add("parent_id = $%d", *filter.ParentID)
			}
		}
		if filter.Published != nil {
			add("published = $%d", *filter.Published)
		}
		if filter.Name != nil {
			add("name = $%d", *filter.Name)
		}
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY sort_order ASC, created_at ASC
	`, pageColumns, table, strings.Join(conditions, " AND "))

	return query, args
}

func scanPage(row pgx.Row) (*models.Page, error) {
	var page models.Page
	var pageType string
	var source []byte

	err := row.Scan(
		&page.ID,
		&page.APIID,
		&page.ParentID,
		&page.Name,
		&pageType,
		&page.Content,
		&page.Order,
		&page.Published,
		&page.LastContributor,
		&source,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	page.Type = models.PageType(pageType)
	if len(source) > 0 {
		page.Source = &models.PageSource{}
		if err := json.Unmarshal(source, page.Source); err != nil {
			return nil, fmt.Errorf("decode page source: %w", err)
		}
	}
	return &page, nil
}

// encodeSource returns the JSONB value of a source; nil stores NULL
func encodeSource(source *models.PageSource) ([]byte, error) {
	if source == nil {
		return nil, nil
	}
	return json.Marshal(source)
}
