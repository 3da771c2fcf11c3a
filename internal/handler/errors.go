package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// errorDetail is the machine-readable part of every error body.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the JSON shape of every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// respondServiceError maps a service-layer error onto the HTTP taxonomy:
// not_found→404, validation_error→422, unauthenticated→401,
// metadata_corrupt→409, provider_error→502, everything else→500.
func respondServiceError(w http.ResponseWriter, err error) {
	var providerErr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "unauthenticated", "no valid credential for the storage provider")
	case errors.Is(err, domain.ErrMetadataCorrupt):
		respondError(w, http.StatusConflict, "metadata_corrupt", "destination metadata exists but cannot be parsed")
	case errors.As(err, &providerErr):
		respondError(w, http.StatusBadGateway, "provider_error", providerErr.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// respondRequestError rejects a request before it reaches the service layer
// (missing or malformed body, missing multipart part).
func respondRequestError(w http.ResponseWriter, message string) {
	respondError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.DestinationService.GetDestination: drive.GetFolder:
// not found" → "not found", "validation error: name is required" →
// "name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
