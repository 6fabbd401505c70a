package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/delciomanico/Monanji/internal/apperr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	statsCacheKey = "stats:dashboard"
	statsCacheTTL = 60 * time.Second
)

// StatsService aggregates dashboard figures for investigators and admins.
// Results are cached in Redis for a minute when a client is configured.
type StatsService struct {
	db     *pgxpool.Pool
	rdb    *redis.Client
	logger *zap.SugaredLogger
}

// NewStatsService creates a new stats service. rdb may be nil.
func NewStatsService(db *pgxpool.Pool, rdb *redis.Client, logger *zap.SugaredLogger) *StatsService {
	return &StatsService{db: db, rdb: rdb, logger: logger}
}

// DailyActivity is one day of submission volume.
type DailyActivity struct {
	Date       string `json:"date"`
	Complaints int    `json:"complaints"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	TotalComplaints int             `json:"total_complaints"`
	ByType          map[string]int  `json:"by_type"`
	ByStatus        map[string]int  `json:"by_status"`
	RecentActivity  []DailyActivity `json:"recent_activity"`
	SuccessRate     float64         `json:"success_rate"`
}

// Dashboard computes (or serves from cache) the dashboard aggregates.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var stats DashboardStats
			if json.Unmarshal(cached, &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats := &DashboardStats{
		ByType:   make(map[string]int),
		ByStatus: make(map[string]int),
	}

	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM complaints`).Scan(&stats.TotalComplaints); err != nil {
		return nil, apperr.FromDB(err, "Stats unavailable")
	}

	rows, err := s.db.Query(ctx, `SELECT complaint_type, COUNT(*) FROM complaints GROUP BY complaint_type`)
	if err != nil {
		return nil, apperr.FromDB(err, "Stats unavailable")
	}
	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			rows.Close()
			return nil, apperr.FromDB(err, "Stats unavailable")
		}
		stats.ByType[typ] = count
	}
	rows.Close()

	rows, err = s.db.Query(ctx, `SELECT status, COUNT(*) FROM complaints GROUP BY status`)
	if err != nil {
		return nil, apperr.FromDB(err, "Stats unavailable")
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, apperr.FromDB(err, "Stats unavailable")
		}
		stats.ByStatus[status] = count
	}
	rows.Close()

	rows, err = s.db.Query(ctx, `
		SELECT DATE(created_at)::TEXT, COUNT(*)
		FROM complaints
		WHERE created_at >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at) DESC
		LIMIT 30
	`)
	if err != nil {
		return nil, apperr.FromDB(err, "Stats unavailable")
	}
	for rows.Next() {
		var day DailyActivity
		if err := rows.Scan(&day.Date, &day.Complaints); err != nil {
			rows.Close()
			return nil, apperr.FromDB(err, "Stats unavailable")
		}
		stats.RecentActivity = append(stats.RecentActivity, day)
	}
	rows.Close()

	var resolved, totalClosed int
	err = s.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'resolved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status IN ('resolved', 'archived') THEN 1 ELSE 0 END), 0)
		FROM complaints
	`).Scan(&resolved, &totalClosed)
	if err != nil {
		return nil, apperr.FromDB(err, "Stats unavailable")
	}
	if totalClosed > 0 {
		stats.SuccessRate = float64(resolved) / float64(totalClosed) * 100
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				s.logger.Warnw("Could not cache dashboard stats", "error", err)
			}
		}
	}

	return stats, nil
}
