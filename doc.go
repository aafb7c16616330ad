// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the item service.

The item service is a small HTTP backend over a single SQL table of items
(id, name, description). It can create the database and table on demand,
list every item, insert one, and delete one by id.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DB_HOST=localhost DB_USER=app DB_PASSWORD=... DB_NAME=inventory TABLE_NAME=items go run .

Or with flags:

	go run . -t sqlite --db-name ./items.db --table items --bootstrap

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DB_NAME (--db-name): database name, or file path for sqlite
  - TABLE_NAME (--table): item table

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DB_TYPE (-t): mysql (default), postgres or sqlite
  - DB_HOST, DB_PORT, DB_USER, DB_PASSWORD: connection parameters
  - REDACT_ERRORS: hide database error text from clients
  - BOOTSTRAP_ON_START: create database and table before serving

See package cliparse for the full list and the config file format.

# Architecture

  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - db: Dialects, per-request connections, schema and item statements
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
