// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the item service.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

	GET    /                   - Health check (exact path only)
	GET    /check-db           - Create database and table if missing
	GET    /api/data           - List items
	POST   /api/data           - Create item
	DELETE /api/data/{item_id} - Delete item

Every route is wrapped with middleware.WithLogging. A known path hit with
the wrong method gets 405 from the mux; unknown paths get 404.

# Handler Initialization

The router creates the handler with dependency injection:

	dataHandler := handlers.NewDataHandler(store, cfg)

CORS is applied by the caller around the whole mux:

	server := http.Server{Handler: middleware.CORS(mux)}
*/
package router
