package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification names the integrity constraint a failed statement
// violated, or [Unclassified] when the error is not a constraint violation.
type ErrorClassification int

const (
	// Unclassified is returned for nil, non-driver and non-constraint errors.
	Unclassified ErrorClassification = iota
	// UniqueViolation is a duplicate key in a unique index.
	UniqueViolation
	// ForeignKeyViolation covers both missing parents and RESTRICT deletes.
	ForeignKeyViolation
	// CheckViolation is a failed CHECK constraint.
	CheckViolation
	// NotNullViolation is a NULL written to a NOT NULL column.
	NotNullViolation
)

// ErrorClassificator maps a driver error to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. It attempts to unwrap err as a
// *pgconn.PgError and delegates to [ClassifyPgError].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return Unclassified
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return Unclassified
}

// ClassifyPgError maps class 23 (integrity constraint violation) codes.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return UniqueViolation
	case pgerrcode.ForeignKeyViolation,
		pgerrcode.RestrictViolation:
		return ForeignKeyViolation
	case pgerrcode.CheckViolation:
		return CheckViolation
	case pgerrcode.NotNullViolation:
		return NotNullViolation
	}

	return Unclassified
}
