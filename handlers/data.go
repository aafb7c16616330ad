// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/item-service/cliparse"
	"github.com/danielhkuo/item-service/db"
	"github.com/danielhkuo/item-service/middleware"
	"github.com/danielhkuo/item-service/models"
)

// redactedMessage replaces driver text when errors are redacted
const redactedMessage = "Database error"

// ItemStore is the storage the data handler needs; *db.Store implements it
type ItemStore interface {
	EnsureSchema(ctx context.Context) error
	ListItems(ctx context.Context) ([]models.Item, error)
	InsertItem(ctx context.Context, name, description string) error
	DeleteItem(ctx context.Context, id int64) error
}

type DataHandler struct {
	store ItemStore
	cfg   cliparse.Config
}

func NewDataHandler(store ItemStore, cfg cliparse.Config) *DataHandler {
	return &DataHandler{store: store, cfg: cfg}
}

// backendMessage is the client-facing text for a storage failure
func (h *DataHandler) backendMessage(err error) string {
	if h.cfg.RedactErrors {
		return redactedMessage
	}
	var dbErr *db.Error
	if errors.As(err, &dbErr) {
		return dbErr.Err.Error()
	}
	return err.Error()
}

// Health handles GET /
func (h *DataHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status:  models.StatusSuccess,
		Message: models.MessageBackendOn,
	})
}

// CheckDB handles GET /check-db
// Creates the database and table if they don't exist
func (h *DataHandler) CheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.store.EnsureSchema(r.Context()); err != nil {
		slog.Error("failed to ensure schema", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.JSONResponse(w, http.StatusInternalServerError, models.StatusResponse{
			Status:  models.StatusError,
			Message: h.backendMessage(err),
		})
		return
	}

	slog.Info("schema checked", "database", h.cfg.DatabaseName, "table", h.cfg.TableName)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status:  models.StatusSuccess,
		Message: models.MessageSchemaReady,
	})
}

// ListItems handles GET /api/data
// Returns every item in the table
func (h *DataHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListItems(r.Context())
	if err != nil {
		slog.Error("failed to list items", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, h.backendMessage(err))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// CreateItem handles POST /api/data
// Both name and description must be present and non-empty
func (h *DataHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req *models.CreateItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate before touching the database
	if req == nil || req.Name == nil || *req.Name == "" || req.Description == nil || *req.Description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MessageMissingFields)
		return
	}

	if err := h.store.InsertItem(r.Context(), *req.Name, *req.Description); err != nil {
		slog.Error("failed to insert item", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, h.backendMessage(err))
		return
	}

	slog.Info("item inserted", "name", *req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: models.MessageItemInserted,
	})
}

// DeleteItem handles DELETE /api/data/{item_id}
// Succeeds whether or not the item existed
func (h *DataHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(r.PathValue("item_id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	if err := h.store.DeleteItem(r.Context(), id); err != nil {
		slog.Error("failed to delete item", "error", err, "item_id", id, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, h.backendMessage(err))
		return
	}

	slog.Info("item deleted", "item_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: models.MessageItemDeleted,
	})
}

// parseItemID accepts unsigned decimal digits only
func parseItemID(raw string) (int64, bool) {
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
