package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// createDestinationRequest is the body of POST /destinations.
type createDestinationRequest struct {
	Name string `json:"name"`
}

// addCategoryRequest is the body of POST /destinations/{destID}/categories.
type addCategoryRequest struct {
	Name string `json:"name"`
}

// ListDestinations handles GET /destinations.
// Without a valid credential this returns 200 with an empty list, not 401 —
// the read path degrades per the storage contract.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := s.destinations.ListDestinations(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, destinations)
}

// CreateDestination handles POST /destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var req createDestinationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	created, err := s.destinations.CreateDestination(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetDestination handles GET /destinations/{destID}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	destination, err := s.destinations.GetDestination(r.Context(), chi.URLParam(r, "destID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, destination)
}

// UpdateDestinationMetadata handles PATCH /destinations/{destID}.
// The body is a partial metadata document; absent fields stay untouched.
func (s *Server) UpdateDestinationMetadata(w http.ResponseWriter, r *http.Request) {
	var patch domain.MetadataPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	if err := s.destinations.UpdateMetadata(r.Context(), chi.URLParam(r, "destID"), patch); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddCategory handles POST /destinations/{destID}/categories.
// The operation is idempotent: posting an existing category name returns
// that category rather than creating a duplicate folder.
func (s *Server) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	category, err := s.destinations.AddCategory(r.Context(), chi.URLParam(r, "destID"), req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}
