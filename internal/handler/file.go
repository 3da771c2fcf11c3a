package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// renameFileRequest is the body of PATCH .../files/{fileID}.
type renameFileRequest struct {
	Name string `json:"name"`
}

// UploadFile handles POST /destinations/{destID}/categories/{categoryID}/files.
// The document arrives as the multipart form field "file"; its filename and
// Content-Type carry over to the stored file. The body-size middleware caps
// the total request size, so the full read here is bounded.
func (s *Server) UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondRequestError(w, `multipart field "file" is required`)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondRequestError(w, "failed to read uploaded file: "+err.Error())
		return
	}

	uploaded, err := s.destinations.UploadFile(
		r.Context(),
		chi.URLParam(r, "destID"),
		chi.URLParam(r, "categoryID"),
		header.Filename,
		header.Header.Get("Content-Type"),
		content,
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, uploaded)
}

// DeleteFile handles DELETE /destinations/{destID}/categories/{categoryID}/files/{fileID}.
func (s *Server) DeleteFile(w http.ResponseWriter, r *http.Request) {
	err := s.destinations.DeleteFile(
		r.Context(),
		chi.URLParam(r, "destID"),
		chi.URLParam(r, "categoryID"),
		chi.URLParam(r, "fileID"),
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameFile handles PATCH /destinations/{destID}/categories/{categoryID}/files/{fileID}.
func (s *Server) RenameFile(w http.ResponseWriter, r *http.Request) {
	var req renameFileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	err := s.destinations.RenameFile(
		r.Context(),
		chi.URLParam(r, "destID"),
		chi.URLParam(r, "categoryID"),
		chi.URLParam(r, "fileID"),
		req.Name,
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
