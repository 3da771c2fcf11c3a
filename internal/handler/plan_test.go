package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

func TestUpdatePlan_204(t *testing.T) {
	var gotPlan []domain.PlanEntry
	svc := &mockDestinationServicer{
		updatePlan: func(_ context.Context, _ string, plan []domain.PlanEntry) error {
			gotPlan = plan
			return nil
		},
	}

	body := jsonBody(t, []map[string]any{
		{"id": "entry-1", "title": "Old town walk", "startDate": "2026-05-01", "endDate": "2026-05-01"},
	})
	rec := doJSON(t, newHTTPHandler(svc), http.MethodPut, "/destinations/dest-1/plan", body)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, gotPlan, 1)
	assert.Equal(t, "Old town walk", gotPlan[0].Title)
}

func TestUpdatePlan_422_InvalidEntry(t *testing.T) {
	svc := &mockDestinationServicer{
		updatePlan: func(_ context.Context, _ string, _ []domain.PlanEntry) error {
			return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
		},
	}

	body := jsonBody(t, []map[string]any{
		{"title": "Backwards", "startDate": "2026-05-02", "endDate": "2026-05-01"},
	})
	rec := doJSON(t, newHTTPHandler(svc), http.MethodPut, "/destinations/dest-1/plan", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	code, message := decodeError(t, rec)
	assert.Equal(t, "validation_error", code)
	assert.Contains(t, message, "endDate")
}

func TestUpsertPlanEntry_200_PathIDWins(t *testing.T) {
	var gotEntry domain.PlanEntry
	svc := &mockDestinationServicer{
		upsertPlanEntry: func(_ context.Context, _ string, entry domain.PlanEntry) (domain.PlanEntry, error) {
			gotEntry = entry
			return entry, nil
		},
	}

	// The body claims a different id; the path segment is authoritative.
	body := jsonBody(t, map[string]any{
		"id":        "body-id",
		"title":     "Museum day",
		"startDate": "2026-05-04",
		"endDate":   "2026-05-04",
	})
	rec := doJSON(t, newHTTPHandler(svc), http.MethodPut, "/destinations/dest-1/plan/entry-7", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "entry-7", gotEntry.ID)

	var resp domain.PlanEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "entry-7", resp.ID)
}

func TestUpsertPlanEntry_404(t *testing.T) {
	svc := &mockDestinationServicer{
		upsertPlanEntry: func(_ context.Context, _ string, _ domain.PlanEntry) (domain.PlanEntry, error) {
			return domain.PlanEntry{}, fmt.Errorf("drive.GetFolder: %w", domain.ErrNotFound)
		},
	}

	body := jsonBody(t, map[string]any{
		"title":     "Museum day",
		"startDate": "2026-05-04",
		"endDate":   "2026-05-04",
	})
	rec := doJSON(t, newHTTPHandler(svc), http.MethodPut, "/destinations/gone/plan/entry-1", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
