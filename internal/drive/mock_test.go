package drive_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psorokin/tripfolio/backend/internal/domain"
	"github.com/psorokin/tripfolio/backend/internal/drive"
)

// compile-time check: the mock must satisfy the full Provider surface.
var _ drive.Provider = (*drive.MockProvider)(nil)

func newMock(t *testing.T) *drive.MockProvider {
	t.Helper()
	return drive.NewMockProvider(filepath.Join(t.TempDir(), "mock_db.json"), "4myTouristApp")
}

// ---- folder resolution -------------------------------------------------------

func TestMockProvider_ResolveRootFolder_Idempotent(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	first, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)

	// Repeated resolution must return the same folder, not create a sibling.
	assert.Equal(t, first, second)
}

func TestMockProvider_ResolveFolder_Idempotent(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	rootID, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)

	first, err := p.ResolveFolder(ctx, rootID, "Hotels")
	require.NoError(t, err)
	second, err := p.ResolveFolder(ctx, rootID, "Hotels")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMockProvider_ResolveFolder_ScopedToParent(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	rootID, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)
	destA, err := p.ResolveFolder(ctx, rootID, "Paris")
	require.NoError(t, err)
	destB, err := p.ResolveFolder(ctx, rootID, "Rome")
	require.NoError(t, err)

	// Same name under different parents resolves to different folders.
	hotelsA, err := p.ResolveFolder(ctx, destA, "Hotels")
	require.NoError(t, err)
	hotelsB, err := p.ResolveFolder(ctx, destB, "Hotels")
	require.NoError(t, err)

	assert.NotEqual(t, hotelsA, hotelsB)
}

func TestMockProvider_CreateFolder_AlwaysNew(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	rootID, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)

	first, err := p.CreateFolder(ctx, rootID, "Paris")
	require.NoError(t, err)
	second, err := p.CreateFolder(ctx, rootID, "Paris")
	require.NoError(t, err)

	// CreateFolder never reuses a same-named sibling.
	assert.NotEqual(t, first.ID, second.ID)

	children, err := p.ListChildFolders(ctx, rootID)
	require.NoError(t, err)
	assert.Len(t, children, 2)
}

func TestMockProvider_GetFolder_NotFound(t *testing.T) {
	p := newMock(t)

	_, err := p.GetFolder(context.Background(), "no-such-folder")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMockProvider_GetFolder_Found(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	rootID, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)
	created, err := p.CreateFolder(ctx, rootID, "Lisbon")
	require.NoError(t, err)

	got, err := p.GetFolder(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Name)
	assert.NotEmpty(t, got.CreatedTime)
}

// ---- persistence -------------------------------------------------------------

func TestMockProvider_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock_db.json")
	ctx := context.Background()

	first := drive.NewMockProvider(path, "4myTouristApp")
	rootID, err := first.ResolveRootFolder(ctx)
	require.NoError(t, err)
	folder, err := first.CreateFolder(ctx, rootID, "Tokyo")
	require.NoError(t, err)

	// A fresh instance over the same file sees the same tree.
	second := drive.NewMockProvider(path, "4myTouristApp")
	got, err := second.GetFolder(ctx, folder.ID)

	require.NoError(t, err)
	assert.Equal(t, "Tokyo", got.Name)
}

func TestMockProvider_MissingStoreFileIsEmpty(t *testing.T) {
	p := drive.NewMockProvider(filepath.Join(t.TempDir(), "does-not-exist.json"), "root")

	// Reads against a never-written store succeed with empty results.
	folders, err := p.ListChildFolders(context.Background(), "anything")

	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestMockProvider_CorruptStoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock_db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	p := drive.NewMockProvider(path, "root")

	_, err := p.ResolveRootFolder(context.Background())

	var provErr *domain.ProviderError
	assert.ErrorAs(t, err, &provErr)
}

// ---- metadata sidecar --------------------------------------------------------

func TestMockProvider_LoadMetadata_AbsentIsNilNil(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	rootID, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)
	folder, err := p.CreateFolder(ctx, rootID, "Paris")
	require.NoError(t, err)

	m, err := p.LoadMetadata(ctx, folder.ID)

	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestMockProvider_SaveMetadata_RoundTrip(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	rootID, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)
	folder, err := p.CreateFolder(ctx, rootID, "Paris")
	require.NoError(t, err)

	meta := domain.DefaultMetadata()
	meta.TravelDate = "2026-05-01"
	meta.Participants = []string{"sasha", "lena"}
	require.NoError(t, p.SaveMetadata(ctx, folder.ID, meta))

	got, err := p.LoadMetadata(ctx, folder.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2026-05-01", got.TravelDate)
	assert.Equal(t, []string{"sasha", "lena"}, got.Participants)
}

func TestMockProvider_SaveMetadata_OverwritesNotDuplicates(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	rootID, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)
	folder, err := p.CreateFolder(ctx, rootID, "Paris")
	require.NoError(t, err)

	meta := domain.DefaultMetadata()
	meta.Comment = "first"
	require.NoError(t, p.SaveMetadata(ctx, folder.ID, meta))
	meta.Comment = "second"
	require.NoError(t, p.SaveMetadata(ctx, folder.ID, meta))

	got, err := p.LoadMetadata(ctx, folder.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Comment)

	// Only one sidecar file exists in the folder.
	files, err := p.ListFiles(ctx, folder.ID)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, drive.MetadataFileName, files[0].Name)
}

func TestMockProvider_LoadMetadata_CorruptSidecar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock_db.json")

	// Hand-write a store whose sidecar content is not valid JSON, the way a
	// hand-edited file ends up.
	store, err := json.Marshal(map[string]any{
		"folders": []map[string]any{
			{"id": "folder-1", "name": "Paris", "parentId": "", "createdTime": "2026-01-01T00:00:00Z"},
		},
		"files": []map[string]any{
			{
				"id":       "file-1",
				"name":     drive.MetadataFileName,
				"mimeType": "application/json",
				"parentId": "folder-1",
				"content":  []byte("{not json"),
			},
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, store, 0o644))

	p := drive.NewMockProvider(path, "root")
	_, err = p.LoadMetadata(context.Background(), "folder-1")

	assert.ErrorIs(t, err, domain.ErrMetadataCorrupt)
}

// ---- file operations ---------------------------------------------------------

func TestMockProvider_UploadListDeleteFile(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	rootID, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)
	folder, err := p.CreateFolder(ctx, rootID, "Visa/Docs")
	require.NoError(t, err)

	file, err := p.UploadFile(ctx, folder.ID, "visa.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.NotEmpty(t, file.ID)
	assert.Equal(t, "visa.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.MimeType)

	files, err := p.ListFiles(ctx, folder.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, file.ID, files[0].ID)

	require.NoError(t, p.DeleteFile(ctx, file.ID))

	files, err = p.ListFiles(ctx, folder.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMockProvider_RenameFile(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	rootID, err := p.ResolveRootFolder(ctx)
	require.NoError(t, err)
	folder, err := p.CreateFolder(ctx, rootID, "Visa/Docs")
	require.NoError(t, err)
	file, err := p.UploadFile(ctx, folder.ID, "visa.pdf", "application/pdf", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, p.RenameFile(ctx, file.ID, "visa-2026.pdf"))

	files, err := p.ListFiles(ctx, folder.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	// Rename changes the name only; the id survives.
	assert.Equal(t, file.ID, files[0].ID)
	assert.Equal(t, "visa-2026.pdf", files[0].Name)
}

func TestMockProvider_DeleteFile_NotFound(t *testing.T) {
	p := newMock(t)

	err := p.DeleteFile(context.Background(), "no-such-file")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMockProvider_RenameFile_NotFound(t *testing.T) {
	p := newMock(t)

	err := p.RenameFile(context.Background(), "no-such-file", "new.pdf")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
