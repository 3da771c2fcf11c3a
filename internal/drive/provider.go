// Package drive contains the storage provider abstraction for Tripfolio and
// its two implementations: the Google Drive REST client used in production
// and a JSON-file-backed mock used for local development and tests.
// No business logic lives here — only folder, file, and sidecar plumbing.
package drive

import (
	"context"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// MetadataFileName is the well-known sidecar file name inside every
// destination folder.
const MetadataFileName = "metadata.json"

// Provider is the full storage surface the destination service depends on.
// It groups three concerns: idempotent folder resolution, the per-destination
// metadata sidecar, and individual file operations within a category folder.
//
// All methods are single remote calls or short call sequences with no local
// caching, no retry, and no transaction spanning calls. Multi-step sequences
// (lookup-or-create, sidecar find-then-write) can race with a concurrent
// equivalent call; the accepted outcome is a duplicate folder or a lost
// update, never a partially written file.
type Provider interface {
	// ResolveRootFolder returns the id of the application's well-known
	// top-level folder, creating it on first use.
	ResolveRootFolder(ctx context.Context) (string, error)

	// ResolveFolder returns the id of the folder named name directly under
	// parentID, creating it if absent. Repeated sequential calls with the
	// same arguments return the same id.
	ResolveFolder(ctx context.Context, parentID, name string) (string, error)

	// CreateFolder always creates a fresh folder under parentID, even when a
	// sibling shares the name. Uniqueness is by id only.
	CreateFolder(ctx context.Context, parentID, name string) (domain.Folder, error)

	// GetFolder fetches a folder's name and creation time by id.
	// Returns domain.ErrNotFound if the id does not resolve.
	GetFolder(ctx context.Context, id string) (domain.Folder, error)

	// ListChildFolders returns the direct sub-folders of parentID in the
	// order the provider reports them.
	ListChildFolders(ctx context.Context, parentID string) ([]domain.Folder, error)

	// LoadMetadata reads the sidecar file inside folderID. Absence is not an
	// error: it returns (nil, nil) so callers can substitute defaults.
	// A sidecar that exists but fails to parse returns domain.ErrMetadataCorrupt.
	LoadMetadata(ctx context.Context, folderID string) (*domain.Metadata, error)

	// SaveMetadata serializes m and overwrites the sidecar file inside
	// folderID, creating it if absent. This is a full replace, not a patch.
	SaveMetadata(ctx context.Context, folderID string, m domain.Metadata) error

	// ListFiles returns the non-trashed files inside folderID in provider
	// order. No sorting is applied here.
	ListFiles(ctx context.Context, folderID string) ([]domain.DriveFile, error)

	// UploadFile stores content as a new file inside folderID in a single
	// shot. There is no resumable transfer; on failure the caller re-invokes
	// from scratch.
	UploadFile(ctx context.Context, folderID, name, mimeType string, content []byte) (domain.DriveFile, error)

	// DeleteFile removes a file by id. Deleting an id the provider no longer
	// knows surfaces the provider's not-found error.
	DeleteFile(ctx context.Context, fileID string) error

	// RenameFile updates a file's display name in place. Id and content are
	// unaffected.
	RenameFile(ctx context.Context, fileID, newName string) error
}

// TokenSource supplies the bearer credential for provider calls.
// Implementations live in internal/auth; the interface is declared here, in
// the consuming package, so drive has no dependency on auth.
//
// Token returns domain.ErrUnauthenticated when no credential exists — the
// caller decides whether that degrades (reads) or propagates (writes).
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
