package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/delciomanico/Monanji/internal/apperr"
	"github.com/delciomanico/Monanji/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SearchService runs the public missing-persons search.
type SearchService struct {
	db     *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewSearchService creates a new search service
func NewSearchService(db *pgxpool.Pool, logger *zap.SugaredLogger) *SearchService {
	return &SearchService{db: db, logger: logger}
}

// MissingPersonQuery narrows the search.
type MissingPersonQuery struct {
	Query    string
	Gender   string
	AgeMin   *int
	AgeMax   *int
	Province string
	Status   models.Status
	Page     int
	Limit    int
}

// MissingPersonResult is one search hit. Only the missing person's data is
// exposed; nothing about the reporter ever is.
type MissingPersonResult struct {
	ID                  uuid.UUID     `json:"id"`
	ProtocolNumber      string        `json:"protocol_number"`
	Status              models.Status `json:"status"`
	IncidentDate        *time.Time    `json:"incident_date,omitempty"`
	Location            *string       `json:"location,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	FullName            string        `json:"full_name"`
	Age                 *int          `json:"age,omitempty"`
	Gender              *string       `json:"gender,omitempty"`
	LastSeenLocation    *string       `json:"last_seen_location,omitempty"`
	LastSeenDate        *string       `json:"last_seen_date,omitempty"`
	PhysicalDescription *string       `json:"physical_description,omitempty"`
}

// MissingPersons searches missing-person complaints with dynamic filters.
func (s *SearchService) MissingPersons(ctx context.Context, q MissingPersonQuery) ([]MissingPersonResult, models.Pagination, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	where := `WHERE c.complaint_type = $1`
	params := []any{models.TypeMissingPerson}

	if q.Query != "" {
		params = append(params, "%"+q.Query+"%")
		where += fmt.Sprintf(` AND (mp.full_name ILIKE $%d OR mp.last_seen_location ILIKE $%d OR c.location ILIKE $%d)`,
			len(params), len(params), len(params))
	}
	if q.Gender != "" {
		params = append(params, q.Gender)
		where += fmt.Sprintf(` AND mp.gender = $%d`, len(params))
	}
	if q.AgeMin != nil {
		params = append(params, *q.AgeMin)
		where += fmt.Sprintf(` AND mp.age >= $%d`, len(params))
	}
	if q.AgeMax != nil {
		params = append(params, *q.AgeMax)
		where += fmt.Sprintf(` AND mp.age <= $%d`, len(params))
	}
	if q.Province != "" {
		params = append(params, "%"+q.Province+"%")
		where += fmt.Sprintf(` AND c.location ILIKE $%d`, len(params))
	}
	if q.Status != "" {
		params = append(params, q.Status)
		where += fmt.Sprintf(` AND c.status = $%d`, len(params))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM complaints c INNER JOIN missing_person_details mp ON c.id = mp.complaint_id ` + where
	if err := s.db.QueryRow(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err, "Search failed")
	}

	listParams := append(params, limit, offset)
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.protocol_number, c.status, c.incident_date, c.location, c.created_at,
			mp.full_name, mp.age, mp.gender, mp.last_seen_location, mp.last_seen_date, mp.physical_description
		FROM complaints c
		INNER JOIN missing_person_details mp ON c.id = mp.complaint_id
		`+where+`
		ORDER BY c.created_at DESC
		LIMIT $`+fmt.Sprint(len(params)+1)+` OFFSET $`+fmt.Sprint(len(params)+2),
		listParams...)
	if err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err, "Search failed")
	}
	defer rows.Close()

	results := make([]MissingPersonResult, 0)
	for rows.Next() {
		var r MissingPersonResult
		if err := rows.Scan(&r.ID, &r.ProtocolNumber, &r.Status, &r.IncidentDate, &r.Location, &r.CreatedAt,
			&r.FullName, &r.Age, &r.Gender, &r.LastSeenLocation, &r.LastSeenDate, &r.PhysicalDescription); err != nil {
			return nil, models.Pagination{}, apperr.FromDB(err, "Search failed")
		}
		results = append(results, r)
	}

	pagination := models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return results, pagination, rows.Err()
}
