// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/item-service/cliparse"
)

// Dialect captures what differs between the supported SQL servers
type Dialect interface {
	// DriverName is the database/sql driver to open
	DriverName() string
	// ServerDSN connects without selecting the configured database
	ServerDSN(cfg cliparse.Config) string
	// DatabaseDSN connects to the configured database
	DatabaseDSN(cfg cliparse.Config) string
	// EnsureDatabase creates the named database if it is absent
	EnsureDatabase(ctx context.Context, conn *sql.Conn, name string) error
	// CreateTableSQL returns an idempotent CREATE TABLE for the item table
	CreateTableSQL(table string) string
	// Placeholder is the bind marker for the n-th (1-based) argument
	Placeholder(n int) string
	QuoteIdent(name string) string
}

// DialectFor returns the dialect registered for a database type
func DialectFor(dbType string) (Dialect, error) {
	switch dbType {
	case cliparse.DatabaseMySQL:
		return mysqlDialect{}, nil
	case cliparse.DatabasePostgres:
		return postgresDialect{}, nil
	case cliparse.DatabaseSQLite:
		return sqliteDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported database type %q", dbType)
}

func hostPort(cfg cliparse.Config, defaultPort int) string {
	port := cfg.DatabasePort
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(cfg.DatabaseHost, strconv.Itoa(port))
}

// MySQL

type mysqlDialect struct{}

func (mysqlDialect) DriverName() string { return "mysql" }

func (d mysqlDialect) ServerDSN(cfg cliparse.Config) string { return d.dsn(cfg, "") }

func (d mysqlDialect) DatabaseDSN(cfg cliparse.Config) string { return d.dsn(cfg, cfg.DatabaseName) }

func (mysqlDialect) dsn(cfg cliparse.Config, dbName string) string {
	mc := mysql.NewConfig()
	mc.User = cfg.DatabaseUser
	mc.Passwd = cfg.DatabasePassword
	mc.Net = "tcp"
	mc.Addr = hostPort(cfg, 3306)
	mc.DBName = dbName
	return mc.FormatDSN()
}

func (d mysqlDialect) EnsureDatabase(ctx context.Context, conn *sql.Conn, name string) error {
	_, err := conn.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS "+d.QuoteIdent(name))
	return err
}

func (d mysqlDialect) CreateTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id INT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255),
    description TEXT
)`, d.QuoteIdent(table))
}

func (mysqlDialect) Placeholder(int) string { return "?" }

func (mysqlDialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// PostgreSQL

// pqDuplicateDatabase is SQLSTATE duplicate_database
const pqDuplicateDatabase = "42P04"

type postgresDialect struct{}

func (postgresDialect) DriverName() string { return "postgres" }

// ServerDSN targets the maintenance database, present on every server
func (d postgresDialect) ServerDSN(cfg cliparse.Config) string { return d.dsn(cfg, "postgres") }

func (d postgresDialect) DatabaseDSN(cfg cliparse.Config) string {
	return d.dsn(cfg, cfg.DatabaseName)
}

func (postgresDialect) dsn(cfg cliparse.Config, dbName string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   hostPort(cfg, 5432),
		Path:   "/" + dbName,
	}
	if cfg.DatabaseUser != "" {
		if cfg.DatabasePassword != "" {
			u.User = url.UserPassword(cfg.DatabaseUser, cfg.DatabasePassword)
		} else {
			u.User = url.User(cfg.DatabaseUser)
		}
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return u.String()
}

// EnsureDatabase emulates CREATE DATABASE IF NOT EXISTS, which PostgreSQL lacks
func (d postgresDialect) EnsureDatabase(ctx context.Context, conn *sql.Conn, name string) error {
	var exists bool
	err := conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = conn.ExecContext(ctx, "CREATE DATABASE "+d.QuoteIdent(name))

	// Lost a race with a concurrent bootstrap
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateDatabase {
		return nil
	}
	return err
}

func (d postgresDialect) CreateTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255),
    description TEXT
)`, d.QuoteIdent(table))
}

func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (postgresDialect) QuoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

// SQLite

// sqliteBusyTimeoutMS lets per-request connections wait on each other's write locks
const sqliteBusyTimeoutMS = 5000

type sqliteDialect struct{}

func (sqliteDialect) DriverName() string { return "sqlite" }

// ServerDSN is the database file itself; sqlite has no server level
func (d sqliteDialect) ServerDSN(cfg cliparse.Config) string { return d.DatabaseDSN(cfg) }

func (sqliteDialect) DatabaseDSN(cfg cliparse.Config) string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", cfg.DatabaseName, sqliteBusyTimeoutMS)
}

// EnsureDatabase only checks the connection: opening it created the file
func (sqliteDialect) EnsureDatabase(ctx context.Context, conn *sql.Conn, _ string) error {
	return conn.PingContext(ctx)
}

func (d sqliteDialect) CreateTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(255),
    description TEXT
)`, d.QuoteIdent(table))
}

func (sqliteDialect) Placeholder(int) string { return "?" }

func (sqliteDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
