package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"nil", nil, Unclassified},
		{"plain error", errors.New("boom"), Unclassified},
		{"unique", pgError(pgerrcode.UniqueViolation), UniqueViolation},
		{"wrapped unique", fmt.Errorf("insert: %w", pgError(pgerrcode.UniqueViolation)), UniqueViolation},
		{"foreign key", pgError(pgerrcode.ForeignKeyViolation), ForeignKeyViolation},
		{"restrict", pgError(pgerrcode.RestrictViolation), ForeignKeyViolation},
		{"check", pgError(pgerrcode.CheckViolation), CheckViolation},
		{"not null", pgError(pgerrcode.NotNullViolation), NotNullViolation},
		{"syntax", pgError(pgerrcode.SyntaxError), Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"nil", nil, Unclassified},
		{"plain error", errors.New("boom"), Unclassified},
		{"unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, UniqueViolation},
		{"foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, ForeignKeyViolation},
		{"restrict foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintTrigger}, ForeignKeyViolation},
		{"check", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}, CheckViolation},
		{"busy", sqlite3.Error{Code: sqlite3.ErrBusy}, Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("a.db"))
	assert.Equal(t, "a.db?cache=shared&_foreign_keys=on&_busy_timeout=5000", sqliteDSN("a.db?cache=shared"))
	assert.Equal(t, "a.db?_foreign_keys=off&_busy_timeout=5000", sqliteDSN("a.db?_foreign_keys=off"))
}
