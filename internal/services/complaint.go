package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/delciomanico/Monanji/internal/apperr"
	"github.com/delciomanico/Monanji/internal/database"
	"github.com/delciomanico/Monanji/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const initialUpdateDescription = "Denúncia submetida e registrada no sistema"

// ComplaintService is the complaint repository: it owns every read and
// write against the complaints table and its satellite tables.
type ComplaintService struct {
	db     *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewComplaintService creates a new complaint service
func NewComplaintService(db *pgxpool.Pool, logger *zap.SugaredLogger) *ComplaintService {
	return &ComplaintService{db: db, logger: logger}
}

// CreatedComplaint is the submission receipt returned to the citizen.
type CreatedComplaint struct {
	ID             uuid.UUID     `json:"id"`
	ProtocolNumber string        `json:"protocol_number"`
	Status         models.Status `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Create files a new complaint. Inside one transaction it claims a protocol
// number, inserts the base row with status submitted, inserts the detail row
// matching the complaint type, and appends the initial public status update.
// Either all four effects commit or none do. A protocol-number collision is
// retried once with a freshly claimed number before surfacing as duplicate.
func (s *ComplaintService) Create(ctx context.Context, req *models.ComplaintSubmission, reporter *models.User) (*CreatedComplaint, error) {
	if !req.ComplaintType.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("Unrecognized complaint type %q", req.ComplaintType))
	}

	detail, err := models.DecodeTypeDetail(req.ComplaintType, req.TypeDetails)
	if err != nil {
		return nil, apperr.Validation("type_details does not match complaint_type")
	}

	var incidentDate *time.Time
	if req.IncidentDate != nil && *req.IncidentDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.IncidentDate)
		if err != nil {
			return nil, apperr.Validation("Invalid incident_date format, expected YYYY-MM-DD")
		}
		incidentDate = &parsed
	}

	created, err := s.createOnce(ctx, req, reporter, detail, incidentDate)
	if apperr.IsDuplicate(err) {
		// Protocol collision: claim a fresh number and retry exactly once.
		s.logger.Warnw("Protocol number collision, retrying", "error", err)
		created, err = s.createOnce(ctx, req, reporter, detail, incidentDate)
	}
	if err != nil {
		return nil, apperr.FromDB(err, "Complaint not found")
	}

	s.logger.Infow("Complaint submitted",
		"id", created.ID,
		"protocol_number", created.ProtocolNumber,
		"complaint_type", req.ComplaintType,
		"is_anonymous", req.IsAnonymous,
	)

	return created, nil
}

func (s *ComplaintService) createOnce(ctx context.Context, req *models.ComplaintSubmission, reporter *models.User, detail models.TypeDetail, incidentDate *time.Time) (*CreatedComplaint, error) {
	created := &CreatedComplaint{
		ID:     uuid.New(),
		Status: models.StatusSubmitted,
	}

	// Anonymous complaints carry no reporter identity, ever.
	var name, contact, email, bi *string
	if !req.IsAnonymous {
		name, contact, email, bi = req.ReporterName, req.ReporterContact, req.ReporterEmail, req.ReporterBI
	}
	var reporterUserID *uuid.UUID
	if reporter != nil {
		reporterUserID = &reporter.ID
	}

	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		protocol, err := NextProtocolNumber(ctx, tx, time.Now())
		if err != nil {
			return err
		}
		created.ProtocolNumber = protocol

		err = tx.QueryRow(ctx, `
			INSERT INTO complaints (
				id, protocol_number, complaint_type, status, is_anonymous,
				reporter_user_id, reporter_name, reporter_contact, reporter_email, reporter_bi,
				incident_date, incident_time, location, description,
				latitude, longitude
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			RETURNING created_at
		`, created.ID, protocol, req.ComplaintType, models.StatusSubmitted, req.IsAnonymous,
			reporterUserID, name, contact, email, bi,
			incidentDate, req.IncidentTime, req.Location, req.Description,
			req.Latitude, req.Longitude,
		).Scan(&created.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert complaint: %w", err)
		}

		if err := insertTypeDetail(ctx, tx, created.ID, detail); err != nil {
			return fmt.Errorf("insert %s details: %w", req.ComplaintType, err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO complaint_updates (complaint_id, status, update_description, is_public)
			VALUES ($1, $2, $3, true)
		`, created.ID, models.StatusSubmitted, initialUpdateDescription); err != nil {
			return fmt.Errorf("insert initial update: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

const complaintColumns = `
	c.id, c.protocol_number, c.complaint_type, c.status, c.is_anonymous,
	c.reporter_user_id, c.reporter_name, c.reporter_contact, c.reporter_email, c.reporter_bi,
	c.incident_date, c.incident_time, c.location, c.description,
	c.latitude, c.longitude, c.investigator_id, c.created_at, c.updated_at`

func scanComplaint(row pgx.Row, c *models.Complaint, extra ...any) error {
	dest := []any{
		&c.ID, &c.ProtocolNumber, &c.ComplaintType, &c.Status, &c.IsAnonymous,
		&c.ReporterUserID, &c.ReporterName, &c.ReporterContact, &c.ReporterEmail, &c.ReporterBI,
		&c.IncidentDate, &c.IncidentTime, &c.Location, &c.Description,
		&c.Latitude, &c.Longitude, &c.InvestigatorID, &c.CreatedAt, &c.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// GetByProtocol loads the base complaint by protocol number together with
// the assigned investigator's contact info when present.
func (s *ComplaintService) GetByProtocol(ctx context.Context, protocolNumber string) (*models.Complaint, *models.InvestigatorContact, error) {
	var c models.Complaint
	var invName, invEmail *string
	var invPhone *string

	row := s.db.QueryRow(ctx, `
		SELECT `+complaintColumns+`,
			u.full_name, u.phone, u.email
		FROM complaints c
		LEFT JOIN users u ON c.investigator_id = u.id
		WHERE c.protocol_number = $1
	`, protocolNumber)
	if err := scanComplaint(row, &c, &invName, &invPhone, &invEmail); err != nil {
		return nil, nil, apperr.FromDB(err, "Complaint not found")
	}

	var investigator *models.InvestigatorContact
	if invName != nil {
		investigator = &models.InvestigatorContact{Name: *invName, Phone: invPhone}
		if invEmail != nil {
			investigator.Email = *invEmail
		}
	}

	return &c, investigator, nil
}

// GetByID loads the base complaint by id.
func (s *ComplaintService) GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	var c models.Complaint
	row := s.db.QueryRow(ctx, `SELECT `+complaintColumns+` FROM complaints c WHERE c.id = $1`, id)
	if err := scanComplaint(row, &c); err != nil {
		return nil, apperr.FromDB(err, "Complaint not found")
	}
	return &c, nil
}

// LoadDetail loads the type-specific detail record for a complaint.
func (s *ComplaintService) LoadDetail(ctx context.Context, c *models.Complaint) (models.TypeDetail, error) {
	detail, err := loadTypeDetail(ctx, s.db, c.ComplaintType, c.ID)
	if err != nil {
		return nil, apperr.FromDB(err, "Complaint not found")
	}
	return detail, nil
}

// ListUpdates returns a complaint's status updates newest first, with the
// updating user's name joined in. publicOnly restricts to entries visible
// to the citizen.
func (s *ComplaintService) ListUpdates(ctx context.Context, complaintID uuid.UUID, publicOnly bool) ([]models.StatusUpdate, error) {
	query := `
		SELECT cu.id, cu.complaint_id, cu.status, cu.update_description,
			cu.updated_by, u.full_name, cu.is_public, cu.created_at
		FROM complaint_updates cu
		LEFT JOIN users u ON cu.updated_by = u.id
		WHERE cu.complaint_id = $1`
	if publicOnly {
		query += ` AND cu.is_public = true`
	}
	query += ` ORDER BY cu.created_at DESC`

	rows, err := s.db.Query(ctx, query, complaintID)
	if err != nil {
		return nil, apperr.FromDB(err, "Complaint not found")
	}
	defer rows.Close()

	var updates []models.StatusUpdate
	for rows.Next() {
		var u models.StatusUpdate
		if err := rows.Scan(&u.ID, &u.ComplaintID, &u.Status, &u.Description,
			&u.UpdatedBy, &u.UpdatedByName, &u.IsPublic, &u.CreatedAt); err != nil {
			return nil, apperr.FromDB(err, "Complaint not found")
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

// ListFilters narrows the "my complaints" listing.
type ListFilters struct {
	Status models.Status
	Type   models.ComplaintType
	Page   int
	Limit  int
}

// ListForIdentity returns paginated summaries of the complaints belonging to
// the calling identity: account-linked reporter rows plus non-anonymous rows
// whose reporter BI matches the caller's BI number.
func (s *ComplaintService) ListForIdentity(ctx context.Context, user *models.User, filters ListFilters) ([]models.ComplaintSummary, models.Pagination, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	where := `WHERE (c.reporter_user_id = $1 OR c.reporter_bi = $2)`
	params := []any{user.ID, user.BINumber}
	if filters.Status != "" {
		params = append(params, filters.Status)
		where += fmt.Sprintf(" AND c.status = $%d", len(params))
	}
	if filters.Type != "" {
		params = append(params, filters.Type)
		where += fmt.Sprintf(" AND c.complaint_type = $%d", len(params))
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM complaints c `+where, params...).Scan(&total); err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err, "Complaint not found")
	}

	listParams := append(params, limit, offset)
	rows, err := s.db.Query(ctx, `
		SELECT `+complaintColumns+`
		FROM complaints c `+where+`
		ORDER BY c.created_at DESC
		LIMIT $`+fmt.Sprint(len(params)+1)+` OFFSET $`+fmt.Sprint(len(params)+2),
		listParams...)
	if err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err, "Complaint not found")
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := scanComplaint(rows, &c); err != nil {
			return nil, models.Pagination{}, apperr.FromDB(err, "Complaint not found")
		}
		complaints = append(complaints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err, "Complaint not found")
	}

	summaries := make([]models.ComplaintSummary, 0, len(complaints))
	for i := range complaints {
		c := &complaints[i]
		detail, err := loadTypeDetail(ctx, s.db, c.ComplaintType, c.ID)
		if err != nil {
			return nil, models.Pagination{}, apperr.FromDB(err, "Complaint not found")
		}
		displayName, briefInfo := detail.Summary(c)
		summaries = append(summaries, models.ComplaintSummary{
			ID:             c.ID,
			ProtocolNumber: c.ProtocolNumber,
			ComplaintType:  c.ComplaintType,
			Status:         c.Status,
			CreatedAt:      c.CreatedAt,
			DisplayName:    displayName,
			BriefInfo:      briefInfo,
		})
	}

	pagination := models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return summaries, pagination, nil
}
