// Package services contains business logic layers.
// Services are called by handlers and interact with the database.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const protocolPrefix = "DENUNCIA"

// FormatProtocolNumber renders the protocol number handed to a citizen at
// submission time: DENUNCIA-YYYYMMDD-NNNN, where NNNN is the 1-based
// sequence among complaints created that day.
func FormatProtocolNumber(day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", protocolPrefix, day.Format("20060102"), seq)
}

// NextProtocolNumber claims the next same-day sequence number inside the
// caller's transaction. The per-day counter row is claimed atomically with
// an upsert, so two concurrent submissions can never observe the same
// pre-increment count; the unique index on complaints.protocol_number plus
// a single retry in the repository remains the backstop.
func NextProtocolNumber(ctx context.Context, tx pgx.Tx, now time.Time) (string, error) {
	var seq int
	err := tx.QueryRow(ctx, `
		INSERT INTO protocol_counters (day, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET last_seq = protocol_counters.last_seq + 1
		RETURNING last_seq
	`, now.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("claim protocol sequence: %w", err)
	}

	return FormatProtocolNumber(now, seq), nil
}
