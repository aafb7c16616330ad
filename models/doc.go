// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateItemRequest: name, description

# Response Types

  - StatusResponse: status, message (health check and schema bootstrap)
  - MessageResponse: message (create and delete)
  - ErrorResponse: error

# Domain Types

  - Item: id, name, description

# Constants

Status values:

	StatusSuccess = "success"
	StatusError   = "error"

The fixed response messages are exported as Message* constants so handlers
and tests agree on the exact text.
*/
package models
