// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the DB itself; every unexpected call fails

	err = Migrate(db, "postgres")
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, "postgres")
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnknownDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, "mysql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

// TestMigrate_SQLite applies the schema to a real SQLite file twice and
// checks the constraints the labeling code relies on.
func TestMigrate_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "m.db")+"?_foreign_keys=on")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, "sqlite"))
	require.NoError(t, Migrate(db, "sqlite"), "second run must be a no-op")

	for _, table := range []string{"users", "pii_categories", "documents", "pii_tags"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	_, err = db.Exec(`INSERT INTO users (login, password_hash) VALUES ('u', 'h')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO pii_categories (value) VALUES ('NAME')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO documents (data_id, text, owner_id) VALUES ('d1', 'hello world', 1)`)
	require.NoError(t, err)

	insertTag := `INSERT INTO pii_tags (document_id, category_id, span_text, start_offset, end_offset) VALUES (1, 1, ?, ?, ?)`
	_, err = db.Exec(insertTag, "hello", 0, 5)
	require.NoError(t, err)

	_, err = db.Exec(insertTag, "hello", 0, 5)
	assert.Error(t, err, "duplicate position must be rejected")

	_, err = db.Exec(insertTag, "", 5, 5)
	assert.Error(t, err, "empty span must be rejected")

	_, err = db.Exec(`DELETE FROM pii_categories WHERE id = 1`)
	assert.Error(t, err, "referenced category must not be deleted")

	_, err = db.Exec(`DELETE FROM documents WHERE id = 1`)
	require.NoError(t, err)

	var tags int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM pii_tags`).Scan(&tags))
	assert.Zero(t, tags, "tags cascade with their document")
}
