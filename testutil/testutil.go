// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/item-service/cliparse"
	"github.com/danielhkuo/item-service/db"
)

// TestTable is the item table used by every test
const TestTable = "items"

// GetTestConfig returns a configuration pointing at a fresh SQLite file in a temp dir
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	cfg := cliparse.DefaultConfig()
	cfg.DatabaseType = cliparse.DatabaseSQLite
	cfg.DatabaseName = filepath.Join(t.TempDir(), "items.db")
	cfg.TableName = TestTable
	cfg.EnvFile = ""
	return cfg
}

// NewTestStore builds a store for cfg without touching the database
func NewTestStore(t *testing.T, cfg cliparse.Config) *db.Store {
	t.Helper()

	connector, err := db.NewConnector(cfg)
	if err != nil {
		t.Fatalf("Failed to create connector: %v", err)
	}
	return db.NewStore(connector, cfg)
}

// SetupTestStore creates a store over a fresh SQLite database with the item table in place
func SetupTestStore(t *testing.T) (*db.Store, cliparse.Config) {
	t.Helper()

	cfg := GetTestConfig(t)
	store := NewTestStore(t, cfg)

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return store, cfg
}

// OpenTestDB opens the test database directly, for assertions that bypass the store
func OpenTestDB(t *testing.T, cfg cliparse.Config) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", cfg.DatabaseName)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// CountRows returns the number of rows in the test table
func CountRows(t *testing.T, cfg cliparse.Config) int {
	t.Helper()

	var n int
	err := OpenTestDB(t, cfg).QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %q", cfg.TableName)).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// InsertTestItem inserts a row directly and returns its id
func InsertTestItem(t *testing.T, cfg cliparse.Config, name, description string) int64 {
	t.Helper()

	res, err := OpenTestDB(t, cfg).Exec(
		fmt.Sprintf("INSERT INTO %q (name, description) VALUES (?, ?)", cfg.TableName),
		name, description,
	)
	if err != nil {
		t.Fatalf("Failed to insert test item: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read test item id: %v", err)
	}
	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
