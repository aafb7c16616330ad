// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/item-service/cliparse"
	"github.com/danielhkuo/item-service/handlers"
	"github.com/danielhkuo/item-service/middleware"
)

func NewRouter(store handlers.ItemStore, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	dataHandler := handlers.NewDataHandler(store, cfg)

	// Health check ({$} keeps it from matching every path)
	mux.HandleFunc("GET /{$}", middleware.WithLogging(dataHandler.Health))

	// Schema bootstrap
	mux.HandleFunc("GET /check-db", middleware.WithLogging(dataHandler.CheckDB))

	// Items
	mux.HandleFunc("GET /api/data", middleware.WithLogging(dataHandler.ListItems))
	mux.HandleFunc("POST /api/data", middleware.WithLogging(dataHandler.CreateItem))
	mux.HandleFunc("DELETE /api/data/{item_id}", middleware.WithLogging(dataHandler.DeleteItem))

	return mux
}
