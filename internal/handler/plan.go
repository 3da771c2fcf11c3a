package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// UpdatePlan handles PUT /destinations/{destID}/plan.
// The body is the complete itinerary; the stored plan is replaced wholesale.
func (s *Server) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var plan []domain.PlanEntry
	if err := decodeJSON(r, &plan); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	if err := s.destinations.UpdatePlan(r.Context(), chi.URLParam(r, "destID"), plan); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpsertPlanEntry handles PUT /destinations/{destID}/plan/{entryID}.
// The path id wins over whatever id the body carries.
func (s *Server) UpsertPlanEntry(w http.ResponseWriter, r *http.Request) {
	var entry domain.PlanEntry
	if err := decodeJSON(r, &entry); err != nil {
		respondRequestError(w, err.Error())
		return
	}
	entry.ID = chi.URLParam(r, "entryID")

	saved, err := s.destinations.UpsertPlanEntry(r.Context(), chi.URLParam(r, "destID"), entry)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}
