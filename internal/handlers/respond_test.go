package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/delciomanico/Monanji/internal/apperr"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRespondData(t *testing.T) {
	rec := httptest.NewRecorder()
	respondData(rec, http.StatusOK, map[string]string{"protocol_number": "DENUNCIA-20250307-0001"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"protocol_number":"DENUNCIA-20250307-0001"}}`, rec.Body.String())
}

func TestRespondMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	respondMessage(rec, http.StatusOK, "Logged out successfully")

	assert.JSONEq(t, `{"success":true,"message":"Logged out successfully"}`, rec.Body.String())
}

func TestRespondErrorCode(t *testing.T) {
	rec := httptest.NewRecorder()
	respondErrorCode(rec, http.StatusBadRequest, "VALIDATION_ERROR", "Description must be at least 10 characters")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		`{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Description must be at least 10 characters"}}`,
		rec.Body.String())
}

func TestRespondError(t *testing.T) {
	logger := zap.NewNop().Sugar()

	t.Run("typed error carries its status and code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondError(rec, logger, apperr.NotFound("Complaint not found"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"Complaint not found"}}`, rec.Body.String())
	})

	t.Run("wrapped typed error still resolves", func(t *testing.T) {
		rec := httptest.NewRecorder()
		wrapped := apperr.FromDB(apperr.Forbidden("Access denied to this complaint"), "ignored")
		respondError(rec, logger, wrapped)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("untyped error hides detail behind 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondError(rec, logger, errors.New("pq: relation \"complaints\" does not exist"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":{"code":"INTERNAL_ERROR","message":"Internal server error"}}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "relation")
	})
}
