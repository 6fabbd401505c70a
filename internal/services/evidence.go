package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/delciomanico/Monanji/internal/apperr"
	"github.com/delciomanico/Monanji/internal/blob"
	"github.com/delciomanico/Monanji/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// allowedEvidenceTypes is the closed set of accepted upload MIME types.
var allowedEvidenceTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
	"video/mp4":       true,
}

// EvidenceService stores evidence files in the blob store and tracks them in
// the database. The blob write happens first: if the row insert then fails
// the blob is deleted best-effort, so an orphaned file may leak but a row
// never references bytes that were not written.
type EvidenceService struct {
	db         *pgxpool.Pool
	store      blob.Store
	logger     *zap.SugaredLogger
	maxSize    int64
	apiBaseURL string
}

// NewEvidenceService creates a new evidence service
func NewEvidenceService(db *pgxpool.Pool, store blob.Store, logger *zap.SugaredLogger, maxSize int64, apiBaseURL string) *EvidenceService {
	return &EvidenceService{db: db, store: store, logger: logger, maxSize: maxSize, apiBaseURL: apiBaseURL}
}

// EvidenceUpload is one incoming file.
type EvidenceUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	Description *string
}

// UploadedEvidence is the per-file receipt.
type UploadedEvidence struct {
	ID       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	FileURL  string    `json:"file_url"`
	FileType string    `json:"file_type"`
}

func (s *EvidenceService) fileURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/api/v1/evidence/%s/download", s.apiBaseURL, id)
}

// Upload attaches files to an existing complaint.
func (s *EvidenceService) Upload(ctx context.Context, complaintID uuid.UUID, uploads []EvidenceUpload, uploader *models.User) ([]UploadedEvidence, error) {
	if len(uploads) == 0 {
		return nil, apperr.New(apperr.KindValidation, "NO_FILES", "No files uploaded")
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM complaints WHERE id = $1)`, complaintID).Scan(&exists); err != nil {
		return nil, apperr.FromDB(err, "Complaint not found")
	}
	if !exists {
		return nil, apperr.NotFound("Complaint not found")
	}

	var uploaderID *uuid.UUID
	if uploader != nil {
		uploaderID = &uploader.ID
	}

	results := make([]UploadedEvidence, 0, len(uploads))
	for _, up := range uploads {
		if !allowedEvidenceTypes[up.ContentType] {
			return results, apperr.New(apperr.KindValidation, "INVALID_FILE_TYPE", "File type not allowed")
		}
		if up.Size > s.maxSize {
			return results, apperr.New(apperr.KindValidation, "FILE_TOO_LARGE", "File size exceeds limit")
		}

		key := "complaints/" + uuid.New().String() + path.Ext(up.FileName)
		info, err := s.store.Put(ctx, key, io.LimitReader(up.Body, s.maxSize+1), blob.PutOptions{ContentType: up.ContentType})
		if err != nil {
			return results, apperr.Wrap(apperr.KindPersistence, "INTERNAL_ERROR", "Failed to store file", err)
		}
		if info.Size > s.maxSize {
			if _, delErr := s.store.Delete(ctx, key); delErr != nil {
				s.logger.Warnw("Could not remove oversized blob", "key", key, "error", delErr)
			}
			return results, apperr.New(apperr.KindValidation, "FILE_TOO_LARGE", "File size exceeds limit")
		}

		var id uuid.UUID
		err = s.db.QueryRow(ctx, `
			INSERT INTO complaint_evidence (complaint_id, file_name, file_path, file_type, file_size, description, uploaded_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, complaintID, up.FileName, key, up.ContentType, info.Size, up.Description, uploaderID).Scan(&id)
		if err != nil {
			// The row is authoritative: without it the stored blob must go.
			if _, delErr := s.store.Delete(ctx, key); delErr != nil {
				s.logger.Warnw("Could not remove blob after failed insert", "key", key, "error", delErr)
			}
			return results, apperr.FromDB(err, "Complaint not found")
		}

		results = append(results, UploadedEvidence{
			ID:       id,
			FileName: up.FileName,
			FileURL:  s.fileURL(id),
			FileType: up.ContentType,
		})
	}

	s.logger.Infow("Evidence uploaded", "complaint_id", complaintID, "files", len(results))
	return results, nil
}

// EvidenceItem is one row of the evidence listing.
type EvidenceItem struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	FileURL     string    `json:"file_url"`
	FileType    string    `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	Description *string   `json:"description,omitempty"`
	UploadedAt  string    `json:"uploaded_at"`
	UploadedBy  *string   `json:"uploaded_by,omitempty"`
}

// List returns a complaint's evidence, newest first.
func (s *EvidenceService) List(ctx context.Context, complaintID uuid.UUID) ([]EvidenceItem, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM complaints WHERE id = $1)`, complaintID).Scan(&exists); err != nil {
		return nil, apperr.FromDB(err, "Complaint not found")
	}
	if !exists {
		return nil, apperr.NotFound("Complaint not found")
	}

	rows, err := s.db.Query(ctx, `
		SELECT ce.id, ce.file_name, ce.file_type, ce.file_size, ce.description,
			ce.uploaded_at, u.full_name
		FROM complaint_evidence ce
		LEFT JOIN users u ON ce.uploaded_by = u.id
		WHERE ce.complaint_id = $1
		ORDER BY ce.uploaded_at DESC
	`, complaintID)
	if err != nil {
		return nil, apperr.FromDB(err, "Complaint not found")
	}
	defer rows.Close()

	items := make([]EvidenceItem, 0)
	for rows.Next() {
		var item EvidenceItem
		var uploadedAt time.Time
		if err := rows.Scan(&item.ID, &item.FileName, &item.FileType, &item.FileSize,
			&item.Description, &uploadedAt, &item.UploadedBy); err != nil {
			return nil, apperr.FromDB(err, "Complaint not found")
		}
		item.UploadedAt = uploadedAt.Format(time.RFC3339)
		item.FileURL = s.fileURL(item.ID)
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete removes an evidence record after checking the actor may do so.
// The blob delete is best-effort; the database row is authoritative.
func (s *EvidenceService) Delete(ctx context.Context, id uuid.UUID, actor *models.User) error {
	var ev models.Evidence
	var c models.Complaint
	err := s.db.QueryRow(ctx, `
		SELECT ce.id, ce.complaint_id, ce.file_path, ce.uploaded_by, c.reporter_user_id
		FROM complaint_evidence ce
		JOIN complaints c ON ce.complaint_id = c.id
		WHERE ce.id = $1
	`, id).Scan(&ev.ID, &ev.ComplaintID, &ev.StorageKey, &ev.UploadedBy, &c.ReporterUserID)
	if err != nil {
		return apperr.FromDB(err, "Evidence not found")
	}

	if !CanDeleteEvidence(actor, &ev, &c) {
		return apperr.Forbidden("Not authorized to delete this evidence")
	}

	if _, err := s.store.Delete(ctx, ev.StorageKey); err != nil {
		s.logger.Warnw("Could not delete blob", "key", ev.StorageKey, "error", err)
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM complaint_evidence WHERE id = $1`, id); err != nil {
		return apperr.FromDB(err, "Evidence not found")
	}

	s.logger.Infow("Evidence deleted", "id", id, "actor", actor.ID)
	return nil
}

// Download streams an evidence file from the blob store.
func (s *EvidenceService) Download(ctx context.Context, id uuid.UUID) (*models.Evidence, io.ReadCloser, error) {
	var ev models.Evidence
	err := s.db.QueryRow(ctx, `
		SELECT id, complaint_id, file_name, file_path, file_type, file_size
		FROM complaint_evidence WHERE id = $1
	`, id).Scan(&ev.ID, &ev.ComplaintID, &ev.FileName, &ev.StorageKey, &ev.FileType, &ev.FileSize)
	if err != nil {
		return nil, nil, apperr.FromDB(err, "Evidence not found")
	}

	_, body, err := s.store.Get(ctx, ev.StorageKey)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindNotFound, "NOT_FOUND", "Evidence file not found", err)
	}
	return &ev, body, nil
}
