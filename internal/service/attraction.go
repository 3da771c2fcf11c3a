package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// AddAttraction appends a new attraction to the destination's list via
// read-merge-write on the sidecar. Attractions are never mutated in place.
// Returns domain.ErrNotFound if the destination does not resolve.
func (s *DestinationService) AddAttraction(ctx context.Context, destID, name string) (domain.Attraction, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Attraction{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if _, err := s.store.GetFolder(ctx, destID); err != nil {
		return domain.Attraction{}, fmt.Errorf("service.DestinationService.AddAttraction: %w", err)
	}

	meta, err := s.loadMetadataStrict(ctx, destID)
	if err != nil {
		return domain.Attraction{}, fmt.Errorf("service.DestinationService.AddAttraction: %w", err)
	}

	attraction := domain.Attraction{
		ID:      uuid.NewString(),
		Name:    name,
		AddedAt: time.Now().UTC().Format(time.RFC3339),
	}
	meta.Attractions = append(meta.Attractions, attraction)

	if err := s.store.SaveMetadata(ctx, destID, meta); err != nil {
		return domain.Attraction{}, fmt.Errorf("service.DestinationService.AddAttraction: %w", err)
	}
	return attraction, nil
}

// RemoveAttraction filters an attraction out of the destination's list by id.
// Removing an id that is not present still rewrites the sidecar and succeeds —
// the outcome (no such attraction) is what the caller asked for.
func (s *DestinationService) RemoveAttraction(ctx context.Context, destID, attractionID string) error {
	if _, err := s.store.GetFolder(ctx, destID); err != nil {
		return fmt.Errorf("service.DestinationService.RemoveAttraction: %w", err)
	}

	meta, err := s.loadMetadataStrict(ctx, destID)
	if err != nil {
		return fmt.Errorf("service.DestinationService.RemoveAttraction: %w", err)
	}

	kept := make([]domain.Attraction, 0, len(meta.Attractions))
	for _, a := range meta.Attractions {
		if a.ID != attractionID {
			kept = append(kept, a)
		}
	}
	meta.Attractions = kept

	if err := s.store.SaveMetadata(ctx, destID, meta); err != nil {
		return fmt.Errorf("service.DestinationService.RemoveAttraction: %w", err)
	}
	return nil
}
