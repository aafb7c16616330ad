package models

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response messages
const (
	MessageBackendOn     = "Backend is on !"
	MessageSchemaReady   = "Database and table checked/created!"
	MessageItemInserted  = "Item inserted successfully!"
	MessageItemDeleted   = "Item deleted"
	MessageMissingFields = "Missing 'name' or 'description'"
)

// Request types

// Pointers tell an absent field from an empty one; both are rejected
type CreateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Response types

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
