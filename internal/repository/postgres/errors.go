package postgres

import (
	"errors"
	"fmt"

	"portal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the page store gives a domain meaning
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidTextRepr     = "22P02" // e.g. a page id that is not a UUID
)

// TranslateError maps a store error to the domain taxonomy, prefixed with op
// and the subject it concerns. Errors without a domain meaning keep their cause.
//
//   - no rows, malformed id → ErrNotFound
//   - missing parent row → ErrNotFound
//   - check / not-null violation → ErrValidation
func TranslateError(err error, op, subject string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", op, subject, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s %s: %w", op, subject, err)
	}

	switch pgErr.Code {
	case codeInvalidTextRepr:
		return fmt.Errorf("%s %s: malformed id: %w", op, subject, domain.ErrNotFound)
	case codeForeignKeyViolation:
		return fmt.Errorf("%s %s: parent page does not exist: %w", op, subject, domain.ErrNotFound)
	case codeCheckViolation, codeNotNullViolation:
		return fmt.Errorf("%w: %s %s violates %s", domain.ErrValidation, op, subject, constraintName(pgErr))
	default:
		return fmt.Errorf("%s %s: %w", op, subject, err)
	}
}

func constraintName(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return pgErr.ColumnName
}
