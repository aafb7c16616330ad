// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/item-service/cliparse"
)

// Error is a failure reported by the database driver during Op.
// Err holds the driver's own error, unmodified.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// Connector hands out one dedicated connection per call.
// Nothing is pooled between calls.
type Connector struct {
	dialect Dialect
	cfg     cliparse.Config
}

func NewConnector(cfg cliparse.Config) (*Connector, error) {
	dialect, err := DialectFor(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}
	return &Connector{dialect: dialect, cfg: cfg}, nil
}

// Dialect returns the SQL dialect of the configured database
func (c *Connector) Dialect() Dialect {
	return c.dialect
}

// WithConn opens a connection, runs fn on it and closes it on every path.
// When useDatabase is false the connection does not select the configured
// database, which lets the caller create it.
func (c *Connector) WithConn(ctx context.Context, useDatabase bool, fn func(conn *sql.Conn) error) error {
	dsn := c.dialect.ServerDSN(c.cfg)
	if useDatabase {
		dsn = c.dialect.DatabaseDSN(c.cfg)
	}

	handle, err := sql.Open(c.dialect.DriverName(), dsn)
	if err != nil {
		return wrap("open", err)
	}
	handle.SetMaxOpenConns(1)
	defer handle.Close()

	conn, err := handle.Conn(ctx)
	if err != nil {
		return wrap("connect", err)
	}
	defer conn.Close()

	return fn(conn)
}

// String describes the target without credentials, for logs
func (c *Connector) String() string {
	if c.cfg.DatabaseType == cliparse.DatabaseSQLite {
		return fmt.Sprintf("sqlite:%s", c.cfg.DatabaseName)
	}
	return fmt.Sprintf("%s://%s/%s", c.cfg.DatabaseType, c.cfg.DatabaseHost, c.cfg.DatabaseName)
}
