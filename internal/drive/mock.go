package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// MockProvider is the development implementation of Provider: the whole
// folder tree lives in a single pretty-printed JSON file on local disk.
// Every operation re-reads the file before acting and writes it back after a
// mutation, mirroring how the real provider is re-queried per call — there is
// no in-memory state between requests.
//
// The mutex only guards the load-mutate-save cycle within this process; it is
// not a substitute for the concurrency guarantees the real provider also
// lacks.
type MockProvider struct {
	mu       sync.Mutex
	path     string
	rootName string
}

// NewMockProvider constructs a mock store persisted at path. A missing file
// means an empty store, not an error, so first use needs no setup.
func NewMockProvider(path, rootName string) *MockProvider {
	return &MockProvider{path: path, rootName: rootName}
}

type mockFolder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ParentID    string `json:"parentId"`
	CreatedTime string `json:"createdTime"`
}

type mockFile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mimeType"`
	ParentID    string `json:"parentId"`
	CreatedTime string `json:"createdTime"`
	Content     []byte `json:"content,omitempty"`
}

type mockStore struct {
	Folders []mockFolder `json:"folders"`
	Files   []mockFile   `json:"files"`
}

// ResolveRootFolder finds or creates the top-level folder (empty parent id).
func (p *MockProvider) ResolveRootFolder(ctx context.Context) (string, error) {
	return p.resolve(ctx, "", p.rootName)
}

// ResolveFolder finds or creates a folder named name under parentID.
func (p *MockProvider) ResolveFolder(ctx context.Context, parentID, name string) (string, error) {
	return p.resolve(ctx, parentID, name)
}

func (p *MockProvider) resolve(_ context.Context, parentID, name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := p.load()
	if err != nil {
		return "", err
	}
	for _, f := range store.Folders {
		if f.ParentID == parentID && f.Name == name {
			return f.ID, nil
		}
	}
	folder := newMockFolder(parentID, name)
	store.Folders = append(store.Folders, folder)
	if err := p.save(store); err != nil {
		return "", err
	}
	return folder.ID, nil
}

// CreateFolder always appends a fresh folder, even when a sibling shares the name.
func (p *MockProvider) CreateFolder(_ context.Context, parentID, name string) (domain.Folder, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := p.load()
	if err != nil {
		return domain.Folder{}, err
	}
	folder := newMockFolder(parentID, name)
	store.Folders = append(store.Folders, folder)
	if err := p.save(store); err != nil {
		return domain.Folder{}, err
	}
	return domain.Folder{ID: folder.ID, Name: folder.Name, CreatedTime: folder.CreatedTime}, nil
}

// GetFolder fetches folder attributes by id.
func (p *MockProvider) GetFolder(_ context.Context, id string) (domain.Folder, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := p.load()
	if err != nil {
		return domain.Folder{}, err
	}
	for _, f := range store.Folders {
		if f.ID == id {
			return domain.Folder{ID: f.ID, Name: f.Name, CreatedTime: f.CreatedTime}, nil
		}
	}
	return domain.Folder{}, fmt.Errorf("drive.GetFolder: %w", domain.ErrNotFound)
}

// ListChildFolders returns sub-folders in insertion (discovery) order.
func (p *MockProvider) ListChildFolders(_ context.Context, parentID string) ([]domain.Folder, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := p.load()
	if err != nil {
		return nil, err
	}
	folders := []domain.Folder{}
	for _, f := range store.Folders {
		if f.ParentID == parentID {
			folders = append(folders, domain.Folder{ID: f.ID, Name: f.Name, CreatedTime: f.CreatedTime})
		}
	}
	return folders, nil
}

// LoadMetadata reads and parses the sidecar file inside folderID.
func (p *MockProvider) LoadMetadata(_ context.Context, folderID string) (*domain.Metadata, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := p.load()
	if err != nil {
		return nil, err
	}
	for _, f := range store.Files {
		if f.ParentID == folderID && f.Name == MetadataFileName {
			var m domain.Metadata
			if err := json.Unmarshal(f.Content, &m); err != nil {
				return nil, fmt.Errorf("drive.LoadMetadata: parse sidecar: %w", domain.ErrMetadataCorrupt)
			}
			return &m, nil
		}
	}
	return nil, nil
}

// SaveMetadata overwrites or creates the sidecar file inside folderID.
func (p *MockProvider) SaveMetadata(_ context.Context, folderID string, m domain.Metadata) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := p.load()
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("drive.SaveMetadata: %w", err)
	}
	for i, f := range store.Files {
		if f.ParentID == folderID && f.Name == MetadataFileName {
			store.Files[i].Content = payload
			return p.save(store)
		}
	}
	store.Files = append(store.Files, mockFile{
		ID:          newMockID("file"),
		Name:        MetadataFileName,
		MimeType:    "application/json",
		ParentID:    folderID,
		CreatedTime: nowRFC3339(),
		Content:     payload,
	})
	return p.save(store)
}

// ListFiles returns the files inside folderID in insertion order.
func (p *MockProvider) ListFiles(_ context.Context, folderID string) ([]domain.DriveFile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := p.load()
	if err != nil {
		return nil, err
	}
	files := []domain.DriveFile{}
	for _, f := range store.Files {
		if f.ParentID == folderID {
			files = append(files, domain.DriveFile{
				ID:          f.ID,
				Name:        f.Name,
				MimeType:    f.MimeType,
				CreatedTime: f.CreatedTime,
			})
		}
	}
	return files, nil
}

// UploadFile stores content as a new file inside folderID.
func (p *MockProvider) UploadFile(_ context.Context, folderID, name, mimeType string, content []byte) (domain.DriveFile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := p.load()
	if err != nil {
		return domain.DriveFile{}, err
	}
	file := mockFile{
		ID:          newMockID("file"),
		Name:        name,
		MimeType:    mimeType,
		ParentID:    folderID,
		CreatedTime: nowRFC3339(),
		Content:     content,
	}
	store.Files = append(store.Files, file)
	if err := p.save(store); err != nil {
		return domain.DriveFile{}, err
	}
	return domain.DriveFile{ID: file.ID, Name: file.Name, MimeType: file.MimeType, CreatedTime: file.CreatedTime}, nil
}

// DeleteFile removes a file by id, mirroring the real provider's not-found
// behavior for unknown ids.
func (p *MockProvider) DeleteFile(_ context.Context, fileID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := p.load()
	if err != nil {
		return err
	}
	for i, f := range store.Files {
		if f.ID == fileID {
			store.Files = append(store.Files[:i], store.Files[i+1:]...)
			return p.save(store)
		}
	}
	return fmt.Errorf("drive.DeleteFile: %w", domain.ErrNotFound)
}

// RenameFile updates a file's name in place.
func (p *MockProvider) RenameFile(_ context.Context, fileID, newName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := p.load()
	if err != nil {
		return err
	}
	for i, f := range store.Files {
		if f.ID == fileID {
			store.Files[i].Name = newName
			return p.save(store)
		}
	}
	return fmt.Errorf("drive.RenameFile: %w", domain.ErrNotFound)
}

// load reads the store file. Missing file = empty store.
func (p *MockProvider) load() (*mockStore, error) {
	raw, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &mockStore{}, nil
	}
	if err != nil {
		return nil, &domain.ProviderError{Op: "drive.mock.load", Message: err.Error()}
	}
	var store mockStore
	if err := json.Unmarshal(raw, &store); err != nil {
		return nil, &domain.ProviderError{Op: "drive.mock.load", Message: "parse store: " + err.Error()}
	}
	return &store, nil
}

// save writes the store file, creating parent directories on first write.
func (p *MockProvider) save(store *mockStore) error {
	payload, err := json.MarshalIndent(store, "", "    ")
	if err != nil {
		return &domain.ProviderError{Op: "drive.mock.save", Message: err.Error()}
	}
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.ProviderError{Op: "drive.mock.save", Message: err.Error()}
		}
	}
	if err := os.WriteFile(p.path, payload, 0o644); err != nil {
		return &domain.ProviderError{Op: "drive.mock.save", Message: err.Error()}
	}
	return nil
}

func newMockFolder(parentID, name string) mockFolder {
	return mockFolder{
		ID:          newMockID("folder"),
		Name:        name,
		ParentID:    parentID,
		CreatedTime: nowRFC3339(),
	}
}

func newMockID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
