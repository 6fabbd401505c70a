package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// Validation failures return before the service is touched, so a nil
// service is safe here.
func newAuthValidationHandler() *AuthHandler {
	return NewAuthHandler(nil, zap.NewNop().Sugar())
}

func TestRegisterValidation(t *testing.T) {
	h := newAuthValidationHandler()

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{"email":`},
		{"bad email", `{"email":"not-an-email","password":"secret1","full_name":"José","bi_number":"003456789LA042"}`},
		{"short password", `{"email":"jose@example.com","password":"abc","full_name":"José","bi_number":"003456789LA042"}`},
		{"missing name", `{"email":"jose@example.com","password":"secret1","full_name":"","bi_number":"003456789LA042"}`},
		{"bad BI format", `{"email":"jose@example.com","password":"secret1","full_name":"José","bi_number":"12345"}`},
		{"lowercase BI letters", `{"email":"jose@example.com","password":"secret1","full_name":"José","bi_number":"003456789la042"}`},
		{"bad phone", `{"email":"jose@example.com","password":"secret1","full_name":"José","bi_number":"003456789LA042","phone":"923456789"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
		})
	}
}

func TestLoginValidation(t *testing.T) {
	h := newAuthValidationHandler()

	for _, body := range []string{
		`{"email":"","password":"secret1"}`,
		`{"email":"jose@example.com","password":""}`,
		`{`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestLogout(t *testing.T) {
	h := newAuthValidationHandler()

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Logged out successfully"}`, rec.Body.String())
}

func TestMeRequiresUser(t *testing.T) {
	h := newAuthValidationHandler()

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
