package api

import (
	"context"
	"errors"
	"net/http"

	"crate-blink/internal/domain"
	"crate-blink/internal/storage"
)

// statusFor maps a request-level error to an HTTP status and a public message.
// ok is false for unexpected errors, whose details must not be exposed.
func statusFor(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "invalid request", true
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "crate not found", true
	case errors.Is(err, domain.ErrNoSupportedAssets):
		return http.StatusUnprocessableEntity, "no supported assets", true
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		return http.StatusBadGateway, "upstream service unavailable", true
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out", true
	default:
		return http.StatusInternalServerError, "failed to prepare purchase", false
	}
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	status, message, ok := statusFor(err)
	resp := errorResponse{Error: message}
	if ok {
		resp.Details = err.Error()
	} else {
		h.logger.Printf("unexpected error: %v", err)
	}
	writeJSON(w, status, resp)
}
