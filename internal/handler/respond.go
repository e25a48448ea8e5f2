package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

// successEnvelope is the wire shape of every successful response
type successEnvelope struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// errorEnvelope is the wire shape of every failed response
type errorEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// respondJSON writes a success envelope
func respondJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(successEnvelope{
		Status:  status,
		Data:    data,
		Message: message,
	})
}

// respondError maps an error to its HTTP status and writes the failure
// envelope. Anything that is not an AppError becomes a 500 without leaking
// internals to the client.
func respondError(w http.ResponseWriter, err error, log *logger.Logger) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("internal server error", err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		log.WithError(appErr).Error("Request failed")
	} else {
		log.WithError(appErr).Debug("Request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(errorEnvelope{
		Status:  appErr.StatusCode,
		Message: appErr.Message,
	})
}

// decodeBody parses a JSON request body into dst
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	return nil
}
