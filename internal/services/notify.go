package services

import (
	"context"
	"fmt"
	"math"

	"github.com/delciomanico/Monanji/internal/apperr"
	"github.com/delciomanico/Monanji/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NotificationService records and serves in-app notifications. Status-change
// notifications are fired and forgotten; a failure is logged, never surfaced
// to the operator who triggered the update.
type NotificationService struct {
	db     *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *pgxpool.Pool, logger *zap.SugaredLogger) *NotificationService {
	return &NotificationService{db: db, logger: logger}
}

// NotifyStatusChange writes a notification for the complaint's account-linked
// reporter. Anonymous and account-less complaints produce none.
func (s *NotificationService) NotifyStatusChange(ctx context.Context, userID *uuid.UUID, complaintID uuid.UUID, protocol string, status models.Status) {
	if userID == nil {
		return
	}

	title := "Atualização da sua denúncia"
	message := fmt.Sprintf("A denúncia %s mudou para o estado %q", protocol, status)

	_, err := s.db.Exec(ctx, `
		INSERT INTO notifications (user_id, complaint_id, title, message, notification_type)
		VALUES ($1, $2, $3, $4, 'status_change')
	`, *userID, complaintID, title, message)
	if err != nil {
		s.logger.Errorw("Failed to record notification",
			"user_id", *userID,
			"complaint_id", complaintID,
			"error", err,
		)
	}
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]models.Notification, models.Pagination, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	where := `WHERE n.user_id = $1`
	if unreadOnly {
		where += ` AND n.is_read = false`
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications n `+where, userID).Scan(&total); err != nil {
		return nil, models.Pagination{}, 0, apperr.FromDB(err, "Notifications unavailable")
	}

	rows, err := s.db.Query(ctx, `
		SELECT n.id, n.title, n.message, n.notification_type, n.is_read, n.created_at,
			c.protocol_number
		FROM notifications n
		LEFT JOIN complaints c ON n.complaint_id = c.id
		`+where+`
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, 0, apperr.FromDB(err, "Notifications unavailable")
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.NotificationType,
			&n.IsRead, &n.CreatedAt, &n.ComplaintProtocol); err != nil {
			return nil, models.Pagination{}, 0, apperr.FromDB(err, "Notifications unavailable")
		}
		notifications = append(notifications, n)
	}

	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, models.Pagination{}, 0, err
	}

	pagination := models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return notifications, pagination, unread, rows.Err()
}

// UnreadCount returns how many unread notifications a user has.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID).Scan(&count)
	if err != nil {
		return 0, apperr.FromDB(err, "Notifications unavailable")
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperr.FromDB(err, "Notification not found")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Notification not found")
	}
	return nil
}

// MarkAllRead marks all of the user's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `UPDATE notifications SET is_read = true WHERE user_id = $1`, userID); err != nil {
		return apperr.FromDB(err, "Notifications unavailable")
	}
	return nil
}
