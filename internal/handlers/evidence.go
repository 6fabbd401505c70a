package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/delciomanico/Monanji/internal/middleware"
	"github.com/delciomanico/Monanji/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EvidenceHandler handles evidence upload, listing, download and deletion.
type EvidenceHandler struct {
	evidenceSvc *services.EvidenceService
	logger      *zap.SugaredLogger
	maxSize     int64
	maxFiles    int
}

// NewEvidenceHandler creates a new evidence handler
func NewEvidenceHandler(es *services.EvidenceService, logger *zap.SugaredLogger, maxSize int64, maxFiles int) *EvidenceHandler {
	return &EvidenceHandler{evidenceSvc: es, logger: logger, maxSize: maxSize, maxFiles: maxFiles}
}

// Upload handles POST /api/v1/evidence/complaints/{id}/evidence
func (h *EvidenceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	complaintID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid complaint id")
		return
	}

	// Keep only small files in memory; larger parts spill to disk.
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondErrorCode(w, http.StatusBadRequest, "NO_FILES", "No files uploaded")
		return
	}
	if len(files) > h.maxFiles {
		respondErrorCode(w, http.StatusBadRequest, "TOO_MANY_FILES", "Too many files uploaded")
		return
	}
	descriptions := r.MultipartForm.Value["descriptions"]

	uploads := make([]services.EvidenceUpload, 0, len(files))
	for i, header := range files {
		if header.Size > h.maxSize {
			respondErrorCode(w, http.StatusBadRequest, "FILE_TOO_LARGE", "File size exceeds limit")
			return
		}

		f, err := header.Open()
		if err != nil {
			respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("Could not read file %q", header.Filename))
			return
		}
		defer f.Close()

		var description *string
		if i < len(descriptions) && descriptions[i] != "" {
			description = &descriptions[i]
		}

		uploads = append(uploads, services.EvidenceUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        f,
			Description: description,
		})
	}

	uploader, _ := middleware.UserFrom(r.Context())
	uploaded, err := h.evidenceSvc.Upload(r.Context(), complaintID, uploads, uploader)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{"uploaded_files": uploaded})
}

// List handles GET /api/v1/evidence/complaints/{id}/evidence
func (h *EvidenceHandler) List(w http.ResponseWriter, r *http.Request) {
	complaintID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid complaint id")
		return
	}

	items, err := h.evidenceSvc.List(r.Context(), complaintID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{"evidence": items})
}

// Delete handles DELETE /api/v1/evidence/{id}
func (h *EvidenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid evidence id")
		return
	}

	actor, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.evidenceSvc.Delete(r.Context(), id, actor); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "Evidence deleted successfully")
}

// Download handles GET /api/v1/evidence/{id}/download
func (h *EvidenceHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid evidence id")
		return
	}

	ev, body, err := h.evidenceSvc.Download(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", ev.FileType)
	w.Header().Set("Content-Length", strconv.FormatInt(ev.FileSize, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", ev.FileName))
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warnw("Evidence stream interrupted", "id", id, "error", err)
	}
}
