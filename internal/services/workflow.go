package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/delciomanico/Monanji/internal/apperr"
	"github.com/delciomanico/Monanji/internal/database"
	"github.com/delciomanico/Monanji/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// WorkflowService applies status transitions. Transitions are deliberately
// unconstrained across the six recognized statuses; the audit trail, not a
// lattice, is the control.
type WorkflowService struct {
	db     *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(db *pgxpool.Pool, logger *zap.SugaredLogger) *WorkflowService {
	return &WorkflowService{db: db, logger: logger}
}

// AppliedUpdate reports the result of a status change.
type AppliedUpdate struct {
	UpdateID       uuid.UUID
	ProtocolNumber string
	ReporterUserID *uuid.UUID
}

// ApplyStatusUpdate sets the complaint's status and appends the audit entry
// in a single transaction, so the status field can never disagree with the
// timeline's newest entry.
func (s *WorkflowService) ApplyStatusUpdate(ctx context.Context, complaintID uuid.UUID, actor *models.User, req *models.StatusUpdateRequest) (*AppliedUpdate, error) {
	if !req.Status.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("Unrecognized status %q", req.Status))
	}
	if len(strings.TrimSpace(req.Description)) < 5 {
		return nil, apperr.Validation("Description must be at least 5 characters")
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	applied := &AppliedUpdate{}
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE complaints SET status = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING protocol_number, reporter_user_id
		`, req.Status, complaintID).Scan(&applied.ProtocolNumber, &applied.ReporterUserID)
		if err != nil {
			return err
		}

		return tx.QueryRow(ctx, `
			INSERT INTO complaint_updates (complaint_id, status, update_description, updated_by, is_public)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, complaintID, req.Status, req.Description, actor.ID, isPublic).Scan(&applied.UpdateID)
	})
	if err != nil {
		return nil, apperr.FromDB(err, "Complaint not found")
	}

	s.logger.Infow("Status updated",
		"complaint_id", complaintID,
		"status", req.Status,
		"actor", actor.ID,
		"is_public", isPublic,
	)

	return applied, nil
}
