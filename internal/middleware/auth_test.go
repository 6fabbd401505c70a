package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/delciomanico/Monanji/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := UserFrom(req.Context())
	assert.False(t, ok)

	user := &models.User{ID: uuid.New(), Role: models.RoleCitizen}
	got, ok := UserFrom(WithUser(req.Context(), user))
	require.True(t, ok)
	assert.Same(t, user, got)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole(models.RoleInvestigator, models.RoleAdmin)(next)

	do := func(user *models.User) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/dashboard", nil)
		if user != nil {
			req = req.WithContext(WithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, do(nil))
	assert.Equal(t, http.StatusForbidden, do(&models.User{Role: models.RoleCitizen}))
	assert.Equal(t, http.StatusOK, do(&models.User{Role: models.RoleInvestigator}))
	assert.Equal(t, http.StatusOK, do(&models.User{Role: models.RoleAdmin}))
}
