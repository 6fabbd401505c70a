package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDB(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantCode string
	}{
		{"no rows", pgx.ErrNoRows, KindNotFound, "NOT_FOUND"},
		{"wrapped no rows", fmt.Errorf("load complaint: %w", pgx.ErrNoRows), KindNotFound, "NOT_FOUND"},
		{"unique violation", &pgconn.PgError{Code: "23505"}, KindDuplicate, "DUPLICATE_ENTRY"},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, KindReference, "REFERENCE_ERROR"},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, KindPersistence, "INTERNAL_ERROR"},
		{"plain error", errors.New("connection reset"), KindPersistence, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDB(tt.err, "Complaint not found")
			assert.Equal(t, tt.wantKind, appErr.Kind)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}

	t.Run("already typed errors pass through", func(t *testing.T) {
		orig := Forbidden("Access denied")
		assert.Same(t, orig, FromDB(orig, "ignored"))
	})

	t.Run("not-found message is caller supplied", func(t *testing.T) {
		appErr := FromDB(pgx.ErrNoRows, "Evidence not found")
		assert.Equal(t, "Evidence not found", appErr.Message)
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindDuplicate, http.StatusBadRequest},
		{KindReference, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindPersistence, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.kind, "X", "x").HTTPStatus())
	}
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, IsDuplicate(Duplicate("already exists")))
	assert.True(t, IsDuplicate(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsDuplicate(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsDuplicate(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicate(errors.New("nope")))
	assert.False(t, IsDuplicate(NotFound("missing")))
}

func TestErrorMessageHidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	appErr := Wrap(KindPersistence, "INTERNAL_ERROR", "Internal server error", cause)

	// The cause stays reachable for logging but the client message is fixed.
	require.ErrorIs(t, appErr, cause)
	assert.Equal(t, "Internal server error", appErr.Message)
	assert.Contains(t, appErr.Error(), "relation does not exist")
}
