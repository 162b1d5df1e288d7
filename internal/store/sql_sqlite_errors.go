package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3
// using the extended result code of the constraint failure.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if err == nil || !errors.As(err, &sqliteErr) {
		return Unclassified
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return UniqueViolation
	case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger:
		// ON DELETE RESTRICT fails with the trigger code; the schema
		// defines no triggers of its own.
		return ForeignKeyViolation
	case sqlite3.ErrConstraintCheck:
		return CheckViolation
	case sqlite3.ErrConstraintNotNull:
		return NotNullViolation
	}

	return Unclassified
}
