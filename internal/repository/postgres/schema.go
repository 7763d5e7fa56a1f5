package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the pages table and its indexes when missing
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				api_id TEXT NOT NULL,
				parent_id UUID REFERENCES %[1]s(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				type TEXT NOT NULL CHECK (type IN ('FOLDER', 'MARKDOWN', 'SWAGGER')),
				content TEXT NOT NULL DEFAULT '',
				sort_order INTEGER NOT NULL DEFAULT 0,
				published BOOLEAN NOT NULL DEFAULT FALSE,
				last_contributor TEXT NOT NULL DEFAULT '',
				source JSONB,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Pages),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]spages_api_order ON %[2]s(api_id, sort_order, created_at)`, tablePrefix, tables.Pages),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]spages_api_parent ON %[2]s(api_id, parent_id)`, tablePrefix, tables.Pages),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]spages_api_name ON %[2]s(api_id, name)`, tablePrefix, tables.Pages),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops every table EnsureSchema creates
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+tables.Pages+" CASCADE"); err != nil {
		return fmt.Errorf("drop %s: %w", tables.Pages, err)
	}
	return nil
}
