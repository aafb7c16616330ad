// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/item-service/cliparse"
	"github.com/danielhkuo/item-service/models"
)

// Store runs the item statements against the configured table.
// Every method opens and closes its own connection.
type Store struct {
	connector    *Connector
	databaseName string
	table        string
}

func NewStore(connector *Connector, cfg cliparse.Config) *Store {
	return &Store{
		connector:    connector,
		databaseName: cfg.DatabaseName,
		table:        cfg.TableName,
	}
}

func (s *Store) quotedTable() string {
	return s.connector.Dialect().QuoteIdent(s.table)
}

// ListItems returns every row in storage order
func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}

	err := s.connector.WithConn(ctx, true, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			fmt.Sprintf("SELECT id, name, description FROM %s", s.quotedTable()),
		)
		if err != nil {
			return wrap("select items", err)
		}
		defer rows.Close()

		for rows.Next() {
			var item models.Item
			var name, description sql.NullString

			if err := rows.Scan(&item.ID, &name, &description); err != nil {
				return wrap("scan item", err)
			}
			item.Name = name.String
			item.Description = description.String

			items = append(items, item)
		}
		return wrap("select items", rows.Err())
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// InsertItem adds a row and lets the storage engine assign its id
func (s *Store) InsertItem(ctx context.Context, name, description string) error {
	dialect := s.connector.Dialect()
	query := fmt.Sprintf("INSERT INTO %s (name, description) VALUES (%s, %s)",
		s.quotedTable(), dialect.Placeholder(1), dialect.Placeholder(2))

	return s.connector.WithConn(ctx, true, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, name, description)
		return wrap("insert item", err)
	})
}

// DeleteItem removes the row with the given id. Deleting a missing id is not an error.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s",
		s.quotedTable(), s.connector.Dialect().Placeholder(1))

	return s.connector.WithConn(ctx, true, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, id)
		return wrap("delete item", err)
	})
}
