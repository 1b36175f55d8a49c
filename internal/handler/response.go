package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON or respondError, so all responses
// share one shape. Errors always look like
//
//	{"error": "not_found", "message": "event not found with id 9999"}
//
// and validation errors add the failing fields:
//
//	{"error": "validation_error", "message": "title is required",
//	 "fields": [{"field": "title", "message": "title is required"}]}

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ghiffarsabda/kormimvp/internal/apperror"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string                `json:"error"`   // machine-readable kind, e.g. "not_found"
	Message string                `json:"message"` // human-readable description
	Fields  []apperror.FieldError `json:"fields,omitempty"`
}

// SuccessResponse is the body of routes that acknowledge instead of echoing
// a record. ID and Message are omitted when unset.
type SuccessResponse struct {
	Success bool   `json:"success"`
	ID      int    `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// writeJSON sets the header and status before encoding; once the body starts
// the headers are gone.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps err to a status with errors.Is and writes it. Errors that
// are not an *apperror.AppError become a 500 carrying internalMsg, never the
// raw error text. It returns the status written.
func writeError(w http.ResponseWriter, err error, internalMsg string) int {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: internalMsg,
		})
		return http.StatusInternalServerError
	}

	status := http.StatusInternalServerError
	kind := "internal_error"
	message := appErr.Message

	switch {
	case errors.Is(err, apperror.ErrValidation):
		status, kind = http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrUnauthorized):
		status, kind = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperror.ErrForbidden):
		status, kind = http.StatusForbidden, "forbidden"
	case errors.Is(err, apperror.ErrConflict):
		status, kind = http.StatusConflict, "conflict"
	default:
		message = internalMsg
	}

	writeJSON(w, status, ErrorResponse{
		Error:   kind,
		Message: message,
		Fields:  appErr.Fields,
	})
	return status
}

// respondError writes err and logs it when it turned into a 500. Client
// errors are only logged at debug.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, internalMsg string) {
	status := writeError(w, err, internalMsg)

	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("requestID", middleware.GetReqID(r.Context())),
		slog.String("error", err.Error()),
	}
	if status >= http.StatusInternalServerError {
		logger.Error(internalMsg, attrs...)
		return
	}
	logger.Debug("request rejected", attrs...)
}
