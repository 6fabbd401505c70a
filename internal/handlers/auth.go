package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/delciomanico/Monanji/internal/middleware"
	"github.com/delciomanico/Monanji/internal/services"
	"go.uber.org/zap"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+244[0-9]{9}$`)
	biRe    = regexp.MustCompile(`^[0-9]{9}[A-Z]{2}[0-9]{3}$`)
)

// AuthHandler handles account endpoints.
type AuthHandler struct {
	authSvc *services.AuthService
	logger  *zap.SugaredLogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(as *services.AuthService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{authSvc: as, logger: logger}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	switch {
	case !emailRe.MatchString(req.Email):
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid email address")
		return
	case len(req.Password) < 6:
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Password must be at least 6 characters")
		return
	case len(req.FullName) < 2:
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Full name is required")
		return
	case !biRe.MatchString(req.BINumber):
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid BI format")
		return
	case req.Phone != nil && *req.Phone != "" && !phoneRe.MatchString(*req.Phone):
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid phone format")
		return
	}

	result, err := h.authSvc.Register(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusCreated, result)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
		return
	}

	result, err := h.authSvc.Login(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, result)
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless; logout is
// client-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "Logged out successfully")
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"user": user})
}
