package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// planDateLayout is the calendar-date format plan entries carry, matching
// what date inputs produce.
const planDateLayout = "2006-01-02"

// UpdatePlan replaces the destination's itinerary wholesale — full replace,
// not merge: entries absent from plan are gone after the write. Entries
// without an id get one minted so the result is addressable by id.
func (s *DestinationService) UpdatePlan(ctx context.Context, destID string, plan []domain.PlanEntry) error {
	for i := range plan {
		if plan[i].ID == "" {
			plan[i].ID = uuid.NewString()
		}
		if err := validatePlanEntry(plan[i]); err != nil {
			return err
		}
	}
	if err := validatePlanIDsUnique(plan); err != nil {
		return err
	}

	if _, err := s.store.GetFolder(ctx, destID); err != nil {
		return fmt.Errorf("service.DestinationService.UpdatePlan: %w", err)
	}
	meta, err := s.loadMetadataStrict(ctx, destID)
	if err != nil {
		return fmt.Errorf("service.DestinationService.UpdatePlan: %w", err)
	}

	if plan == nil {
		plan = []domain.PlanEntry{}
	}
	meta.Plan = plan

	if err := s.store.SaveMetadata(ctx, destID, meta); err != nil {
		return fmt.Errorf("service.DestinationService.UpdatePlan: %w", err)
	}
	return nil
}

// UpsertPlanEntry saves a single itinerary entry: an existing id is replaced
// in place, a new id is appended. Storage guarantees no order — consumers
// sort by start date for display.
func (s *DestinationService) UpsertPlanEntry(ctx context.Context, destID string, entry domain.PlanEntry) (domain.PlanEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := validatePlanEntry(entry); err != nil {
		return domain.PlanEntry{}, err
	}

	if _, err := s.store.GetFolder(ctx, destID); err != nil {
		return domain.PlanEntry{}, fmt.Errorf("service.DestinationService.UpsertPlanEntry: %w", err)
	}
	meta, err := s.loadMetadataStrict(ctx, destID)
	if err != nil {
		return domain.PlanEntry{}, fmt.Errorf("service.DestinationService.UpsertPlanEntry: %w", err)
	}

	replaced := false
	for i, existing := range meta.Plan {
		if existing.ID == entry.ID {
			meta.Plan[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		meta.Plan = append(meta.Plan, entry)
	}

	if err := s.store.SaveMetadata(ctx, destID, meta); err != nil {
		return domain.PlanEntry{}, fmt.Errorf("service.DestinationService.UpsertPlanEntry: %w", err)
	}
	return entry, nil
}

// validatePlanEntry enforces the rules for one itinerary entry:
//   - Title must be non-blank.
//   - StartDate and EndDate are required calendar dates (a single-day entry
//     has both equal).
//   - EndDate must not be before StartDate.
func validatePlanEntry(entry domain.PlanEntry) error {
	if strings.TrimSpace(entry.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	err := validation.ValidateStruct(&entry,
		validation.Field(&entry.StartDate, validation.Required, validation.Date(planDateLayout)),
		validation.Field(&entry.EndDate, validation.Required, validation.Date(planDateLayout)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	start, _ := time.Parse(planDateLayout, entry.StartDate)
	end, _ := time.Parse(planDateLayout, entry.EndDate)
	if end.Before(start) {
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	return nil
}

// validatePlanIDsUnique rejects plans carrying the same entry id twice.
func validatePlanIDsUnique(plan []domain.PlanEntry) error {
	seen := make(map[string]struct{}, len(plan))
	for _, entry := range plan {
		if _, dup := seen[entry.ID]; dup {
			return fmt.Errorf("%w: duplicate plan entry id %q", domain.ErrValidation, entry.ID)
		}
		seen[entry.ID] = struct{}{}
	}
	return nil
}
