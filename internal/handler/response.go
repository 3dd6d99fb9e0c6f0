package handler

// RESPONSE HELPERS:
// Every error response from the API has the same shape:
//   {"error": "not_found", "message": "The food item you're looking for doesn't exist (ID: cv37rs3p...)"}
//
// The message is the same text the calculator shows in its own state, so an
// API client and the CLI see identical wording.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/calorie-calculator/internal/apperror"
	"github.com/sakif/calorie-calculator/internal/service"
	"github.com/sakif/calorie-calculator/internal/validation"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string                   `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string                   `json:"message"` // Human-readable description
	Field   string                   `json:"field,omitempty"`
	Pending *service.PendingDecision `json:"pending,omitempty"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be set before the body is written.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// headers are already sent, all we can do is log
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps an error from the calculator to an HTTP status and body.
//
// ERROR MAPPING:
//
//	validation.Error, apperror.ErrValidation → 400
//	apperror.ErrInvalidDate                → 400
//	apperror.ErrNotFound                   → 404
//	apperror.ErrConflict, service.ErrNoPending → 409
//	apperror.ErrStorageExhausted           → 507
//	any other *apperror.AppError           → 500 with its message
//	anything else                          → 500, generic message
//
// Goal failures carry their short label as message, food failures their
// descriptive message. Validation messages are localized.
func writeError(w http.ResponseWriter, err error, lang validation.Lang) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: ve.Localize(lang),
		})
		return
	}

	if errors.Is(err, service.ErrNoPending) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:   "no_pending",
			Message: "There is no duplicate decision waiting",
		})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "storage_error"
		message := appErr.Message

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
			message = appErr.UserMessage()
		case errors.Is(err, apperror.ErrInvalidDate):
			status = http.StatusBadRequest
			errorType = "invalid_date"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		case errors.Is(err, apperror.ErrStorageExhausted):
			status = http.StatusInsufficientStorage
			errorType = "storage_full"
		case errors.Is(err, apperror.ErrGoalSave),
			errors.Is(err, apperror.ErrGoalFetch),
			errors.Is(err, apperror.ErrGoalDelete):
			errorType = "goal_error"
			message = appErr.UserMessage()
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: message,
			Field:   appErr.Field,
		})
		return
	}

	// Unknown error: never expose internal details to the client.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
