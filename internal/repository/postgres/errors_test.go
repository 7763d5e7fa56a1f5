package postgres

import (
	"errors"
	"io"
	"testing"

	"portal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantSentinel error
		wantCause    error
		wantMsg      string
	}{
		{
			name:         "no rows",
			err:          pgx.ErrNoRows,
			wantSentinel: domain.ErrNotFound,
			wantMsg:      "get page p1: not found",
		},
		{
			name:         "malformed id",
			err:          &pgconn.PgError{Code: codeInvalidTextRepr},
			wantSentinel: domain.ErrNotFound,
			wantMsg:      "get page p1: malformed id: not found",
		},
		{
			name:         "missing parent",
			err:          &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "pages_parent_id_fkey"},
			wantSentinel: domain.ErrNotFound,
		},
		{
			name:         "check violation",
			err:          &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "pages_type_check"},
			wantSentinel: domain.ErrValidation,
			wantMsg:      "validation failed: get page p1 violates pages_type_check",
		},
		{
			name:         "not null violation names the column",
			err:          &pgconn.PgError{Code: codeNotNullViolation, ColumnName: "name"},
			wantSentinel: domain.ErrValidation,
			wantMsg:      "validation failed: get page p1 violates name",
		},
		{
			name:      "unclassified server error keeps its cause",
			err:       &pgconn.PgError{Code: "40001"},
			wantCause: &pgconn.PgError{},
		},
		{
			name:      "connection error keeps its cause",
			err:       io.ErrUnexpectedEOF,
			wantCause: io.ErrUnexpectedEOF,
			wantMsg:   "get page p1: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TranslateError(tt.err, "get page", "p1")

			assert.Error(t, err)
			if tt.wantSentinel != nil {
				assert.ErrorIs(t, err, tt.wantSentinel)
			} else {
				assert.False(t, errors.Is(err, domain.ErrNotFound))
				assert.False(t, errors.Is(err, domain.ErrValidation))
			}
			if pgCause, ok := tt.wantCause.(*pgconn.PgError); ok {
				assert.ErrorAs(t, err, &pgCause)
			} else if tt.wantCause != nil {
				assert.ErrorIs(t, err, tt.wantCause)
			}
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}

	assert.NoError(t, TranslateError(nil, "get page", "p1"))
}
