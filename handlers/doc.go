// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP handlers of the item service.

# Data Handler

DataHandler serves every route. It is built from an ItemStore and the
process configuration:

	h := handlers.NewDataHandler(store, cfg)

*db.Store satisfies ItemStore; tests substitute their own.

# Routes

	GET    /                   - Health check, never fails
	GET    /check-db           - Create database and table if missing
	GET    /api/data           - List all items
	POST   /api/data           - Insert an item
	DELETE /api/data/{item_id} - Delete an item by id

# Responses

Health and schema bootstrap answer with a status object:

	{"status": "success", "message": "..."}

Create and delete answer with a message object; failures with an error
object:

	{"message": "Item deleted"}
	{"error": "Missing 'name' or 'description'"}

# Errors

  - 400: missing or empty name/description, or a body that is not JSON.
    The database is not contacted.
  - 404: item_id is not an unsigned integer.
  - 500: the database driver failed. The driver's message is returned as
    is, or "Database error" when the redact-errors setting is on. The full
    error is always logged.

Deleting an id that does not exist is not an error.
*/
package handlers
