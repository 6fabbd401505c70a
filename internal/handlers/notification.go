package handlers

import (
	"net/http"
	"strconv"

	"github.com/delciomanico/Monanji/internal/middleware"
	"github.com/delciomanico/Monanji/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationHandler serves a user's in-app notifications.
type NotificationHandler struct {
	notifySvc *services.NotificationService
	logger    *zap.SugaredLogger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(ns *services.NotificationService, logger *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{notifySvc: ns, logger: logger}
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	params := r.URL.Query()
	page, _ := strconv.Atoi(params.Get("page"))
	limit, _ := strconv.Atoi(params.Get("limit"))
	unreadOnly := params.Get("unread_only") == "true"

	notifications, pagination, unread, err := h.notifySvc.List(r.Context(), user.ID, unreadOnly, page, limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"pagination":    pagination,
		"unread_count":  unread,
	})
}

// UnreadCount handles GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	count, err := h.notifySvc.UnreadCount(r.Context(), user.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, map[string]int{"unread_count": count})
}

// MarkRead handles PUT /api/v1/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid notification id")
		return
	}

	if err := h.notifySvc.MarkRead(r.Context(), user.ID, id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "Notification marked as read")
}

// MarkAllRead handles PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.notifySvc.MarkAllRead(r.Context(), user.ID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "All notifications marked as read")
}
