package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// DefaultBaseURL is the Google API host used when none is supplied.
// Both the metadata endpoints (/drive/v3) and the upload endpoints
// (/upload/drive/v3) live under it.
const DefaultBaseURL = "https://www.googleapis.com"

const (
	folderMimeType = "application/vnd.google-apps.folder"
	fileFields     = "id,name,mimeType,createdTime,webViewLink,thumbnailLink,hasThumbnail"
	folderFields   = "id,name,createdTime"
)

// GoogleProvider implements Provider against the Google Drive v3 REST API.
// Every method is one or two synchronous HTTP calls with no retry; provider
// failures are mapped to domain.ErrNotFound (404) or *domain.ProviderError
// and propagated untouched.
type GoogleProvider struct {
	http     *http.Client
	baseURL  string
	rootName string
	tokens   TokenSource
}

// NewGoogleProvider constructs a Drive-backed Provider. rootName is the
// well-known top-level folder for the app. client defaults to
// http.DefaultClient and baseURL to DefaultBaseURL when zero — tests point
// baseURL at an httptest.Server.
func NewGoogleProvider(client *http.Client, tokens TokenSource, rootName, baseURL string) *GoogleProvider {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GoogleProvider{
		http:     client,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		rootName: rootName,
		tokens:   tokens,
	}
}

// gFile is the subset of the Drive file resource this client reads.
type gFile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	CreatedTime   string `json:"createdTime"`
	WebViewLink   string `json:"webViewLink"`
	ThumbnailLink string `json:"thumbnailLink"`
	HasThumbnail  bool   `json:"hasThumbnail"`
}

func (f gFile) toDriveFile() domain.DriveFile {
	return domain.DriveFile{
		ID:            f.ID,
		Name:          f.Name,
		MimeType:      f.MimeType,
		CreatedTime:   f.CreatedTime,
		WebViewLink:   f.WebViewLink,
		ThumbnailLink: f.ThumbnailLink,
		HasThumbnail:  f.HasThumbnail,
	}
}

func (f gFile) toFolder() domain.Folder {
	return domain.Folder{ID: f.ID, Name: f.Name, CreatedTime: f.CreatedTime}
}

// ResolveRootFolder finds the app's top-level folder by name, creating it on
// first use. The list-then-create sequence is not atomic; two concurrent
// first calls can each create a root folder.
func (p *GoogleProvider) ResolveRootFolder(ctx context.Context) (string, error) {
	const op = "drive.ResolveRootFolder"
	q := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escapeQueryTerm(p.rootName), folderMimeType)
	found, err := p.queryFiles(ctx, op, q)
	if err != nil {
		return "", err
	}
	if len(found) > 0 {
		return found[0].ID, nil
	}
	folder, err := p.createFolder(ctx, op, "", p.rootName)
	if err != nil {
		return "", err
	}
	return folder.ID, nil
}

// ResolveFolder finds the folder named name directly under parentID, creating
// it if absent. Same non-atomic lookup-or-create caveat as ResolveRootFolder.
func (p *GoogleProvider) ResolveFolder(ctx context.Context, parentID, name string) (string, error) {
	const op = "drive.ResolveFolder"
	q := fmt.Sprintf("name='%s' and '%s' in parents and mimeType='%s' and trashed=false",
		escapeQueryTerm(name), escapeQueryTerm(parentID), folderMimeType)
	found, err := p.queryFiles(ctx, op, q)
	if err != nil {
		return "", err
	}
	if len(found) > 0 {
		return found[0].ID, nil
	}
	folder, err := p.createFolder(ctx, op, parentID, name)
	if err != nil {
		return "", err
	}
	return folder.ID, nil
}

// CreateFolder always creates a fresh folder, never reusing a same-named sibling.
func (p *GoogleProvider) CreateFolder(ctx context.Context, parentID, name string) (domain.Folder, error) {
	return p.createFolder(ctx, "drive.CreateFolder", parentID, name)
}

func (p *GoogleProvider) createFolder(ctx context.Context, op, parentID, name string) (domain.Folder, error) {
	body := map[string]any{
		"name":     name,
		"mimeType": folderMimeType,
	}
	if parentID != "" {
		body["parents"] = []string{parentID}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.Folder{}, fmt.Errorf("%s: %w", op, err)
	}

	u := p.baseURL + "/drive/v3/files?" + url.Values{"fields": {folderFields}}.Encode()
	var created gFile
	if err := p.do(ctx, op, http.MethodPost, u, bytes.NewReader(payload), "application/json; charset=UTF-8", &created); err != nil {
		return domain.Folder{}, err
	}
	return created.toFolder(), nil
}

// GetFolder fetches a folder's attributes by id.
func (p *GoogleProvider) GetFolder(ctx context.Context, id string) (domain.Folder, error) {
	const op = "drive.GetFolder"
	u := p.baseURL + "/drive/v3/files/" + url.PathEscape(id) + "?" + url.Values{"fields": {folderFields}}.Encode()
	var f gFile
	if err := p.do(ctx, op, http.MethodGet, u, nil, "", &f); err != nil {
		return domain.Folder{}, err
	}
	return f.toFolder(), nil
}

// ListChildFolders returns the non-trashed sub-folders of parentID.
func (p *GoogleProvider) ListChildFolders(ctx context.Context, parentID string) ([]domain.Folder, error) {
	const op = "drive.ListChildFolders"
	q := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", escapeQueryTerm(parentID), folderMimeType)
	found, err := p.queryFiles(ctx, op, q)
	if err != nil {
		return nil, err
	}
	folders := make([]domain.Folder, len(found))
	for i, f := range found {
		folders[i] = f.toFolder()
	}
	return folders, nil
}

// LoadMetadata finds and downloads the sidecar file inside folderID.
// Absence returns (nil, nil); an unparseable sidecar returns ErrMetadataCorrupt.
func (p *GoogleProvider) LoadMetadata(ctx context.Context, folderID string) (*domain.Metadata, error) {
	const op = "drive.LoadMetadata"
	fileID, err := p.findSidecar(ctx, op, folderID)
	if err != nil {
		return nil, err
	}
	if fileID == "" {
		return nil, nil
	}

	u := p.baseURL + "/drive/v3/files/" + url.PathEscape(fileID) + "?alt=media"
	raw, err := p.download(ctx, op, u)
	if err != nil {
		return nil, err
	}

	var m domain.Metadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%s: parse sidecar: %w", op, domain.ErrMetadataCorrupt)
	}
	return &m, nil
}

// SaveMetadata writes the full sidecar, overwriting an existing file or
// creating one inside folderID. The find-then-write sequence is the
// documented last-writer-wins window.
func (p *GoogleProvider) SaveMetadata(ctx context.Context, folderID string, m domain.Metadata) error {
	const op = "drive.SaveMetadata"
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	fileID, err := p.findSidecar(ctx, op, folderID)
	if err != nil {
		return err
	}

	if fileID != "" {
		u := p.baseURL + "/upload/drive/v3/files/" + url.PathEscape(fileID) + "?uploadType=media"
		return p.do(ctx, op, http.MethodPatch, u, bytes.NewReader(payload), "application/json; charset=UTF-8", nil)
	}

	meta := map[string]any{
		"name":     MetadataFileName,
		"mimeType": "application/json",
		"parents":  []string{folderID},
	}
	_, err = p.uploadMultipart(ctx, op, meta, "application/json; charset=UTF-8", payload)
	return err
}

// findSidecar returns the sidecar file id inside folderID, or "" if absent.
func (p *GoogleProvider) findSidecar(ctx context.Context, op, folderID string) (string, error) {
	q := fmt.Sprintf("name='%s' and '%s' in parents and trashed=false", MetadataFileName, escapeQueryTerm(folderID))
	found, err := p.queryFiles(ctx, op, q)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", nil
	}
	return found[0].ID, nil
}

// ListFiles returns the non-trashed files inside folderID in provider order.
func (p *GoogleProvider) ListFiles(ctx context.Context, folderID string) ([]domain.DriveFile, error) {
	const op = "drive.ListFiles"
	q := fmt.Sprintf("'%s' in parents and trashed=false", escapeQueryTerm(folderID))
	found, err := p.queryFiles(ctx, op, q)
	if err != nil {
		return nil, err
	}
	files := make([]domain.DriveFile, len(found))
	for i, f := range found {
		files[i] = f.toDriveFile()
	}
	return files, nil
}

// UploadFile stores content as a new file inside folderID via a single
// multipart request. No resumable transfer, no retry.
func (p *GoogleProvider) UploadFile(ctx context.Context, folderID, name, mimeType string, content []byte) (domain.DriveFile, error) {
	const op = "drive.UploadFile"
	meta := map[string]any{
		"name":    name,
		"parents": []string{folderID},
	}
	created, err := p.uploadMultipart(ctx, op, meta, mimeType, content)
	if err != nil {
		return domain.DriveFile{}, err
	}
	return created.toDriveFile(), nil
}

// DeleteFile removes a file by id. Drive returns 404 for unknown ids, which
// surfaces as domain.ErrNotFound.
func (p *GoogleProvider) DeleteFile(ctx context.Context, fileID string) error {
	const op = "drive.DeleteFile"
	u := p.baseURL + "/drive/v3/files/" + url.PathEscape(fileID)
	return p.do(ctx, op, http.MethodDelete, u, nil, "", nil)
}

// RenameFile updates the file's display name in place.
func (p *GoogleProvider) RenameFile(ctx context.Context, fileID, newName string) error {
	const op = "drive.RenameFile"
	payload, err := json.Marshal(map[string]string{"name": newName})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	u := p.baseURL + "/drive/v3/files/" + url.PathEscape(fileID)
	return p.do(ctx, op, http.MethodPatch, u, bytes.NewReader(payload), "application/json; charset=UTF-8", nil)
}

// --- transport helpers ------------------------------------------------------

// queryFiles runs a files.list call with the given q expression.
func (p *GoogleProvider) queryFiles(ctx context.Context, op, q string) ([]gFile, error) {
	params := url.Values{
		"q":      {q},
		"fields": {"files(" + fileFields + ")"},
		"spaces": {"drive"},
	}
	var result struct {
		Files []gFile `json:"files"`
	}
	u := p.baseURL + "/drive/v3/files?" + params.Encode()
	if err := p.do(ctx, op, http.MethodGet, u, nil, "", &result); err != nil {
		return nil, err
	}
	return result.Files, nil
}

// uploadMultipart performs a multipart/related files.create: a JSON metadata
// part followed by the media part.
func (p *GoogleProvider) uploadMultipart(ctx context.Context, op string, meta map[string]any, mimeType string, content []byte) (gFile, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	metaPart, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"application/json; charset=UTF-8"}})
	if err != nil {
		return gFile{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.NewEncoder(metaPart).Encode(meta); err != nil {
		return gFile{}, fmt.Errorf("%s: %w", op, err)
	}
	mediaPart, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {mimeType}})
	if err != nil {
		return gFile{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := mediaPart.Write(content); err != nil {
		return gFile{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := w.Close(); err != nil {
		return gFile{}, fmt.Errorf("%s: %w", op, err)
	}

	u := p.baseURL + "/upload/drive/v3/files?" + url.Values{
		"uploadType": {"multipart"},
		"fields":     {fileFields},
	}.Encode()

	var created gFile
	contentType := "multipart/related; boundary=" + w.Boundary()
	if err := p.do(ctx, op, http.MethodPost, u, &buf, contentType, &created); err != nil {
		return gFile{}, err
	}
	return created, nil
}

// do sends one authenticated request and decodes the JSON response into out
// (skipped when out is nil, e.g. DELETE).
func (p *GoogleProvider) do(ctx context.Context, op, method, url string, body io.Reader, contentType string, out any) error {
	resp, err := p.send(ctx, op, method, url, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.ProviderError{Op: op, StatusCode: resp.StatusCode, Message: "malformed response: " + err.Error()}
	}
	return nil
}

// download sends one authenticated request and returns the raw body bytes.
func (p *GoogleProvider) download(ctx context.Context, op, url string) ([]byte, error) {
	resp, err := p.send(ctx, op, http.MethodGet, url, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ProviderError{Op: op, StatusCode: resp.StatusCode, Message: "read response: " + err.Error()}
	}
	return raw, nil
}

// send issues the request and maps failure statuses to domain errors.
// The caller owns the response body on success.
func (p *GoogleProvider) send(ctx context.Context, op, method, url string, body io.Reader, contentType string) (*http.Response, error) {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Op: op, Message: err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil, &domain.ProviderError{Op: op, StatusCode: resp.StatusCode, Message: decodeAPIError(resp.Body)}
}

// decodeAPIError extracts the message from a Drive error body, when present.
func decodeAPIError(r io.Reader) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Error.Message
}

// escapeQueryTerm escapes backslashes and single quotes for use inside a
// Drive q expression string literal.
func escapeQueryTerm(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
