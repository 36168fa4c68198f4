package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/logger"
)

// Standard response types for consistent API responses

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// InsufficientInventoryResponse explains which resource an upgrade is short of
type InsufficientInventoryResponse struct {
	Error     string  `json:"error"`
	ItemID    uint32  `json:"item_id"`
	Required  float32 `json:"required"`
	Available float32 `json:"available"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to a status and user-facing message.
// Server-side failures are logged; their details never reach the client.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	var insufficient *domain.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		respondJSON(w, http.StatusConflict, InsufficientInventoryResponse{
			Error:     ErrMsgInsufficientItemsErr,
			ItemID:    insufficient.ItemID,
			Required:  insufficient.Required,
			Available: insufficient.Available,
		})
		return
	}

	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	// Mining messages
	ErrMsgInvalidLocationError = "Unknown mine location"
	ErrMsgInventoryFullError   = "Inventory is full"

	// Ledger messages
	ErrMsgItemNotFoundError    = "You don't have the items this costs"
	ErrMsgInsufficientItemsErr = "Not enough items"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrInvalidLocation):
		return http.StatusBadRequest, ErrMsgInvalidLocationError
	case errors.Is(err, domain.ErrInventoryFull):
		return http.StatusConflict, ErrMsgInventoryFullError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusConflict, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientInventory):
		return http.StatusConflict, ErrMsgInsufficientItemsErr
	case errors.Is(err, domain.ErrMiningClosed), errors.Is(err, domain.ErrWriterClosed):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
