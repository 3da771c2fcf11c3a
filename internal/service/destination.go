// Package service contains the business logic for the Tripfolio API.
// The destination service is the only component that knows how to assemble a
// full Destination aggregate from the storage provider's folder tree and
// sidecar metadata, and how to decompose updates back into folder, file, and
// sidecar operations. No HTTP and no provider wire formats live here — the
// service depends on the drive.Provider interface, not an implementation.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/psorokin/tripfolio/backend/internal/domain"
	"github.com/psorokin/tripfolio/backend/internal/drive"
)

// DestinationService implements every exposed destination operation.
// It holds no state between calls: each operation re-reads the subset of
// remote state it needs before mutating, so there is no cache to invalidate —
// and no optimistic-concurrency protection either. Concurrent read-merge-write
// sequences on the same destination race, and the later write wins.
type DestinationService struct {
	store drive.Provider
}

// NewDestinationService constructs a DestinationService backed by the
// provided storage implementation.
func NewDestinationService(store drive.Provider) *DestinationService {
	return &DestinationService{store: store}
}

// ListDestinations returns every destination under the app's root folder.
//
// This operation never fails for a single broken destination: a missing or
// unreadable sidecar degrades to default metadata and a failed category
// enumeration degrades to an empty category list. Without a credential it
// returns an empty list — indistinguishable, at this layer, from truly
// having zero destinations.
func (s *DestinationService) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	rootID, err := s.store.ResolveRootFolder(ctx)
	if errors.Is(err, domain.ErrUnauthenticated) {
		return []domain.Destination{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.ListDestinations: %w", err)
	}

	folders, err := s.store.ListChildFolders(ctx, rootID)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.ListDestinations: %w", err)
	}

	destinations := make([]domain.Destination, 0, len(folders))
	for _, folder := range folders {
		destinations = append(destinations, s.assembleLenient(ctx, folder))
	}
	return destinations, nil
}

// GetDestination assembles the full aggregate for one destination.
// A folder id that does not resolve is a hard domain.ErrNotFound; an absent
// or corrupt sidecar degrades to default metadata. Category order is
// discovery order — no reordering happens at this layer.
func (s *DestinationService) GetDestination(ctx context.Context, id string) (domain.Destination, error) {
	folder, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.GetDestination: %w", err)
	}

	meta := domain.DefaultMetadata()
	m, err := s.store.LoadMetadata(ctx, id)
	switch {
	case errors.Is(err, domain.ErrMetadataCorrupt):
		// Unreadable sidecar reads as absent; the destination stays visible.
	case err != nil:
		return domain.Destination{}, fmt.Errorf("service.DestinationService.GetDestination: %w", err)
	case m != nil:
		meta = *m
	}

	categories, err := s.loadCategories(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.GetDestination: %w", err)
	}

	return newDestination(folder, meta, categories), nil
}

// CreateDestination creates a fresh destination folder under root (always a
// new folder — name collisions across destinations are allowed, uniqueness is
// by id), its four default category folders, and an initial empty sidecar.
//
// There is no rollback: if a category or the sidecar fails after the folder
// was created, the half-initialized folder remains and a retry creates a
// second sibling.
func (s *DestinationService) CreateDestination(ctx context.Context, name string) (domain.Destination, error) {
	if err := validateFolderName(name); err != nil {
		return domain.Destination{}, err
	}

	rootID, err := s.store.ResolveRootFolder(ctx)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.CreateDestination: %w", err)
	}
	folder, err := s.store.CreateFolder(ctx, rootID, name)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.CreateDestination: %w", err)
	}

	categories := make([]domain.Category, 0, len(domain.DefaultCategoryNames))
	for _, categoryName := range domain.DefaultCategoryNames {
		sub, err := s.store.CreateFolder(ctx, folder.ID, categoryName)
		if err != nil {
			return domain.Destination{}, fmt.Errorf("service.DestinationService.CreateDestination: %w", err)
		}
		categories = append(categories, domain.Category{ID: sub.ID, Name: sub.Name, Files: []domain.DriveFile{}})
	}

	meta := domain.DefaultMetadata()
	if err := s.store.SaveMetadata(ctx, folder.ID, meta); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.CreateDestination: %w", err)
	}

	return newDestination(folder, meta, categories), nil
}

// UpdateMetadata applies a partial update to the sidecar-backed fields via
// read-merge-write. A corrupt sidecar is a hard error here: merging onto
// defaults would silently discard whatever the unreadable file held.
func (s *DestinationService) UpdateMetadata(ctx context.Context, id string, patch domain.MetadataPatch) error {
	if _, err := s.store.GetFolder(ctx, id); err != nil {
		return fmt.Errorf("service.DestinationService.UpdateMetadata: %w", err)
	}
	meta, err := s.loadMetadataStrict(ctx, id)
	if err != nil {
		return fmt.Errorf("service.DestinationService.UpdateMetadata: %w", err)
	}
	if err := s.store.SaveMetadata(ctx, id, patch.Apply(meta)); err != nil {
		return fmt.Errorf("service.DestinationService.UpdateMetadata: %w", err)
	}
	return nil
}

// AddCategory resolves or creates a category folder under the destination.
// Adding a name that already exists returns the existing category — the
// operation is idempotent, unlike CreateDestination's always-create.
func (s *DestinationService) AddCategory(ctx context.Context, destID, name string) (domain.Category, error) {
	if err := validateFolderName(name); err != nil {
		return domain.Category{}, err
	}
	if _, err := s.store.GetFolder(ctx, destID); err != nil {
		return domain.Category{}, fmt.Errorf("service.DestinationService.AddCategory: %w", err)
	}

	id, err := s.store.ResolveFolder(ctx, destID, name)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.DestinationService.AddCategory: %w", err)
	}
	// An existing category may already hold files; report them rather than
	// returning an empty list that contradicts the next GetDestination.
	files, err := s.store.ListFiles(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.DestinationService.AddCategory: %w", err)
	}
	return domain.Category{ID: id, Name: name, Files: files}, nil
}

// --- assembly helpers -------------------------------------------------------

// assembleLenient builds a destination without ever failing: sidecar and
// category problems degrade to defaults so one broken destination cannot
// hide the rest of the list.
func (s *DestinationService) assembleLenient(ctx context.Context, folder domain.Folder) domain.Destination {
	meta := domain.DefaultMetadata()
	if m, err := s.store.LoadMetadata(ctx, folder.ID); err == nil && m != nil {
		meta = *m
	}
	categories, err := s.loadCategories(ctx, folder.ID)
	if err != nil {
		categories = []domain.Category{}
	}
	return newDestination(folder, meta, categories)
}

// loadCategories enumerates a destination's category sub-folders and their
// files, in discovery order.
func (s *DestinationService) loadCategories(ctx context.Context, destID string) ([]domain.Category, error) {
	folders, err := s.store.ListChildFolders(ctx, destID)
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(folders))
	for _, f := range folders {
		files, err := s.store.ListFiles(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		categories = append(categories, domain.Category{ID: f.ID, Name: f.Name, Files: files})
	}
	return categories, nil
}

// loadMetadataStrict loads the sidecar for a read-merge-write sequence.
// Absence yields defaults, but corruption propagates — a merge-write over a
// sidecar we could not read would silently lose data.
func (s *DestinationService) loadMetadataStrict(ctx context.Context, destID string) (domain.Metadata, error) {
	m, err := s.store.LoadMetadata(ctx, destID)
	if err != nil {
		return domain.Metadata{}, err
	}
	if m == nil {
		return domain.DefaultMetadata(), nil
	}
	return *m, nil
}

// newDestination merges the folder-sourced identity with sidecar metadata.
// ID, Name, and CreatedTime always come from the folder, never the sidecar.
func newDestination(folder domain.Folder, meta domain.Metadata, categories []domain.Category) domain.Destination {
	d := domain.Destination{
		ID:           folder.ID,
		Name:         folder.Name,
		CreatedTime:  folder.CreatedTime,
		Categories:   categories,
		Attractions:  meta.Attractions,
		Plan:         meta.Plan,
		TravelDate:   meta.TravelDate,
		DueDate:      meta.DueDate,
		Participants: meta.Participants,
		FlightOut:    meta.FlightOut,
		FlightReturn: meta.FlightReturn,
		Comment:      meta.Comment,
		CoverImage:   meta.CoverImage,
	}
	// A hand-edited sidecar can hold nulls; keep the aggregate's slices
	// iterable.
	if d.Categories == nil {
		d.Categories = []domain.Category{}
	}
	if d.Attractions == nil {
		d.Attractions = []domain.Attraction{}
	}
	if d.Plan == nil {
		d.Plan = []domain.PlanEntry{}
	}
	if d.Participants == nil {
		d.Participants = []string{}
	}
	return d
}

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

// validateFolderName enforces the naming rules shared by destinations and
// categories: non-blank, at most 255 runes, no slashes.
func validateFolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	err := validation.Validate(name,
		validation.RuneLength(1, 255),
		validation.Match(folderNamePattern).Error("name cannot contain slashes"),
	)
	if err != nil {
		return fmt.Errorf("%w: name %v", domain.ErrValidation, err)
	}
	return nil
}
