// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database access for the item table.

# Dialects

DialectFor maps a configured database type to its SQL dialect:

  - mysql: github.com/go-sql-driver/mysql, ? placeholders, AUTO_INCREMENT ids
  - postgres: github.com/lib/pq, $n placeholders, SERIAL ids
  - sqlite: modernc.org/sqlite, DB_NAME is the database file path

# Connections

A Connector opens a dedicated connection for each call and closes it before
returning, whether or not the callback failed:

	err := connector.WithConn(ctx, true, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, args...)
		return err
	})

No connection survives a call, so no pool is shared between requests.

# Schema Creation

EnsureSchema creates the database and the item table:

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS (PostgreSQL checks
pg_database first since it has no CREATE DATABASE IF NOT EXISTS).

# Table

	id          auto-increment integer primary key
	name        VARCHAR(255)
	description TEXT

# Errors

Driver failures come back as *Error, which names the operation and keeps
the driver error intact in Err:

	var dbErr *db.Error
	if errors.As(err, &dbErr) {
		fmt.Println(dbErr.Err)
	}
*/
package db
