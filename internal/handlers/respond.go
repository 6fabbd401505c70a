// Package handlers contains HTTP request handlers for the Monanji API.
// Handlers parse and validate requests, call services, and return JSON
// responses in the standard envelope.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/delciomanico/Monanji/internal/apperr"
	"go.uber.org/zap"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

// respondJSON writes an arbitrary payload.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondData wraps data in the success envelope.
func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, envelope{Success: true, Data: data})
}

// respondMessage wraps a bare message in the success envelope.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Success: true, Message: message})
}

// respondErrorCode writes the error envelope with an explicit status.
func respondErrorCode(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, envelope{Success: false, Error: &errorBody{Code: code, Message: message}})
}

// respondError maps a service error to the error envelope. Typed errors
// carry their own status and stable code; anything untyped is logged and
// hidden behind a generic 500 so internal detail never leaks to clients.
func respondError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperr.KindPersistence {
			logger.Errorw("Request failed", "error", err)
		}
		respondErrorCode(w, appErr.HTTPStatus(), appErr.Code, appErr.Message)
		return
	}

	logger.Errorw("Request failed", "error", err)
	respondErrorCode(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
