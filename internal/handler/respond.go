package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// respondJSON writes a JSON response with the given status code. Marshaling
// happens before any header is written, so an encoding failure still produces
// a clean 500 instead of a truncated body.
func respondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		http.Error(w, `{"error":{"code":"internal","message":"failed to encode response"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// decodeJSON decodes the request body into dst, rejecting unknown fields so
// client typos surface as errors instead of silently ignored input.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body: " + err.Error())
	}
	return nil
}
