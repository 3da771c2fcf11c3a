package domain

import "errors"

// ErrNotFound is returned when a referenced destination, category, or file id
// does not resolve on the storage provider. Distinct from "exists but empty".
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, end date before start date).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when no bearer credential is available for
// the storage provider. Read paths degrade to empty results instead; write
// paths propagate it. Handlers map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrMetadataCorrupt is returned when a destination's sidecar file exists but
// cannot be parsed. Read paths treat it the same as an absent sidecar; any
// read-merge-write path must surface it rather than silently overwrite the
// unreadable state. Handlers map this to HTTP 409.
var ErrMetadataCorrupt = errors.New("metadata corrupt")

// ProviderError carries an unclassified failure from the remote storage API
// (network, quota, malformed response). It is propagated to the caller
// without local retry.
type ProviderError struct {
	// Op names the provider operation that failed, e.g. "drive.ListFiles".
	Op string
	// StatusCode is the HTTP status returned by the provider, 0 for
	// transport-level failures.
	StatusCode int
	// Message is the provider's error description, when one was decodable.
	Message string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Message == "" {
		return e.Op + ": provider request failed"
	}
	return e.Op + ": " + e.Message
}
