package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// UploadFile stores a document in one of the destination's category folders.
// The category must be a direct child of the destination, otherwise
// domain.ErrNotFound — a valid category id under some other destination is
// still "not found" here. The upload itself is a single shot with no retry;
// the core performs no size or type validation.
func (s *DestinationService) UploadFile(ctx context.Context, destID, categoryID, name, mimeType string, content []byte) (domain.DriveFile, error) {
	if strings.TrimSpace(name) == "" {
		return domain.DriveFile{}, fmt.Errorf("%w: file name is required", domain.ErrValidation)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	if err := s.ensureCategory(ctx, destID, categoryID); err != nil {
		return domain.DriveFile{}, fmt.Errorf("service.DestinationService.UploadFile: %w", err)
	}

	file, err := s.store.UploadFile(ctx, categoryID, name, mimeType, content)
	if err != nil {
		return domain.DriveFile{}, fmt.Errorf("service.DestinationService.UploadFile: %w", err)
	}
	return file, nil
}

// DeleteFile removes a document from a category. A single destructive remote
// operation with no undo.
func (s *DestinationService) DeleteFile(ctx context.Context, destID, categoryID, fileID string) error {
	if err := s.ensureCategory(ctx, destID, categoryID); err != nil {
		return fmt.Errorf("service.DestinationService.DeleteFile: %w", err)
	}
	if err := s.store.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("service.DestinationService.DeleteFile: %w", err)
	}
	return nil
}

// RenameFile updates a document's display name in place; id and content are
// unaffected.
func (s *DestinationService) RenameFile(ctx context.Context, destID, categoryID, fileID, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return fmt.Errorf("%w: file name is required", domain.ErrValidation)
	}
	if err := s.ensureCategory(ctx, destID, categoryID); err != nil {
		return fmt.Errorf("service.DestinationService.RenameFile: %w", err)
	}
	if err := s.store.RenameFile(ctx, fileID, newName); err != nil {
		return fmt.Errorf("service.DestinationService.RenameFile: %w", err)
	}
	return nil
}

// ensureCategory verifies that categoryID is a direct child folder of destID.
// The destination lookup runs first so a missing destination and a missing
// category both surface as domain.ErrNotFound with a useful message.
func (s *DestinationService) ensureCategory(ctx context.Context, destID, categoryID string) error {
	if _, err := s.store.GetFolder(ctx, destID); err != nil {
		return err
	}
	folders, err := s.store.ListChildFolders(ctx, destID)
	if err != nil {
		return err
	}
	for _, f := range folders {
		if f.ID == categoryID {
			return nil
		}
	}
	return fmt.Errorf("category %s: %w", categoryID, domain.ErrNotFound)
}
