package errs

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// FromPostgres translates a storage-layer failure into the gateway taxonomy.
//
// Mapping:
//   - sql.ErrNoRows / pgx no-data → KindNotFound
//   - unique_violation (23505) → KindConflict
//   - foreign_key/check/not-null violations → KindValidation
//   - anything else → KindInternal, original error preserved as cause
//
// The op string names the failed operation for server-side logs; it is never
// part of the client-facing message for internal errors.
func FromPostgres(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return Wrap(KindNotFound, "resource not found", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return Wrap(KindConflict, "resource already exists", err)
		case pgerrcode.NoDataFound:
			return Wrap(KindNotFound, "resource not found", err)
		case pgerrcode.ForeignKeyViolation,
			pgerrcode.CheckViolation,
			pgerrcode.NotNullViolation:
			return Wrap(KindValidation, "invalid data provided", err)
		}
	}

	return Wrap(KindInternal, op, err)
}
