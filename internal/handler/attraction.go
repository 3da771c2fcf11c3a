package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// addAttractionRequest is the body of POST /destinations/{destID}/attractions.
type addAttractionRequest struct {
	Name string `json:"name"`
}

// AddAttraction handles POST /destinations/{destID}/attractions.
func (s *Server) AddAttraction(w http.ResponseWriter, r *http.Request) {
	var req addAttractionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	attraction, err := s.destinations.AddAttraction(r.Context(), chi.URLParam(r, "destID"), req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, attraction)
}

// RemoveAttraction handles DELETE /destinations/{destID}/attractions/{attractionID}.
// Removing an id that is not on the list still succeeds with 204.
func (s *Server) RemoveAttraction(w http.ResponseWriter, r *http.Request) {
	err := s.destinations.RemoveAttraction(r.Context(), chi.URLParam(r, "destID"), chi.URLParam(r, "attractionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
