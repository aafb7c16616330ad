// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the configured database and item table.
// Safe to call multiple times - uses IF NOT EXISTS.
func (s *Store) EnsureSchema(ctx context.Context) error {
	dialect := s.connector.Dialect()

	err := s.connector.WithConn(ctx, false, func(conn *sql.Conn) error {
		return wrap("create database", dialect.EnsureDatabase(ctx, conn, s.databaseName))
	})
	if err != nil {
		return err
	}

	return s.connector.WithConn(ctx, true, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, dialect.CreateTableSQL(s.table))
		return wrap("create table", err)
	})
}
