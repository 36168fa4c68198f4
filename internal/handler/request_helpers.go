package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/middleware"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req StartMiningRequest
//	if err := DecodeAndValidateRequest(r, w, &req, OpStartMining); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	return validateRequest(w, req)
}

// DecodeOptionalRequest is DecodeAndValidateRequest for endpoints whose body
// may be omitted; an empty body leaves req at its zero value.
func DecodeOptionalRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	return validateRequest(w, req)
}

func validateRequest(w http.ResponseWriter, req interface{}) error {
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
//
// Example usage:
//
//	limit := GetOptionalQueryParam(r, "limit", "10")
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetUintQueryParam parses an optional non-negative integer query parameter.
// On a malformed value it writes a 400 response and returns false.
func GetUintQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (uint32, bool) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, paramName))
		return 0, false
	}
	return uint32(value), true
}

// requirePlayerID returns the player id put in the context by the identity
// middleware. It writes a 401 when the route was mounted without it.
func requirePlayerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	playerID, ok := middleware.PlayerIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgMissingPlayerID)
		return 0, false
	}
	return playerID, true
}
