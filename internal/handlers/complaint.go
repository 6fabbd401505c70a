package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/delciomanico/Monanji/internal/metrics"
	"github.com/delciomanico/Monanji/internal/middleware"
	"github.com/delciomanico/Monanji/internal/models"
	"github.com/delciomanico/Monanji/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var incidentTimeRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ComplaintHandler handles complaint-related HTTP endpoints
type ComplaintHandler struct {
	complaintSvc *services.ComplaintService
	workflowSvc  *services.WorkflowService
	notifySvc    *services.NotificationService
	logger       *zap.SugaredLogger
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(cs *services.ComplaintService, ws *services.WorkflowService, ns *services.NotificationService, logger *zap.SugaredLogger) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: cs, workflowSvc: ws, notifySvc: ns, logger: logger}
}

// Submit handles POST /api/v1/complaints
func (h *ComplaintHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ComplaintSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if msg := validateSubmission(&req); msg != "" {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	reporter, _ := middleware.UserFrom(r.Context())
	created, err := h.complaintSvc.Create(r.Context(), &req, reporter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	metrics.ComplaintSubmitted(string(req.ComplaintType))

	respondJSON(w, http.StatusCreated, envelope{Success: true, Data: map[string]interface{}{
		"id":              created.ID,
		"protocol_number": created.ProtocolNumber,
		"status":          created.Status,
		"created_at":      created.CreatedAt,
		"message":         "Denúncia registrada com sucesso",
	}})
}

func validateSubmission(req *models.ComplaintSubmission) string {
	if !req.ComplaintType.Valid() {
		return "complaint_type must be one of the recognized types"
	}
	if len(req.Description) < 10 {
		return "Description must be at least 10 characters"
	}
	if req.IncidentTime != nil && *req.IncidentTime != "" && !incidentTimeRe.MatchString(*req.IncidentTime) {
		return "Invalid time format, expected HH:MM"
	}
	if req.Location != nil && *req.Location != "" && len(*req.Location) < 3 {
		return "Location must be at least 3 characters"
	}
	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
		return "latitude must be between -90 and 90"
	}
	if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
		return "longitude must be between -180 and 180"
	}
	return ""
}

// Lookup handles GET /api/v1/complaints/{id}, where the path value is the
// protocol number handed out on submission.
func (h *ComplaintHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	protocol := chi.URLParam(r, "id")
	if protocol == "" {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Protocol number required")
		return
	}

	complaint, investigator, err := h.complaintSvc.GetByProtocol(r.Context(), protocol)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	// Anyone holding the protocol number may look a complaint up; only an
	// authenticated-but-unrelated account is refused.
	actor, _ := middleware.UserFrom(r.Context())
	if !services.CanRead(actor, complaint) {
		respondErrorCode(w, http.StatusForbidden, "FORBIDDEN", "Access denied to this complaint")
		return
	}

	detail, err := h.complaintSvc.LoadDetail(r.Context(), complaint)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	updates, err := h.complaintSvc.ListUpdates(r.Context(), complaint.ID, true)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, services.BuildCompositeView(complaint, detail, updates, investigator))
}

// My handles GET /api/v1/complaints/my
func (h *ComplaintHandler) My(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	filters := services.ListFilters{
		Status: models.Status(r.URL.Query().Get("status")),
		Type:   models.ComplaintType(r.URL.Query().Get("type")),
	}
	filters.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filters.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	if filters.Status != "" && !filters.Status.Valid() {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unrecognized status filter")
		return
	}
	if filters.Type != "" && !filters.Type.Valid() {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unrecognized type filter")
		return
	}

	summaries, pagination, err := h.complaintSvc.ListForIdentity(r.Context(), user, filters)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"complaints": summaries,
		"pagination": pagination,
	})
}

// Update handles PUT /api/v1/complaints/{id}/update
func (h *ComplaintHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid complaint id")
		return
	}

	actor, _ := middleware.UserFrom(r.Context())
	if !services.CanWriteStatus(actor) {
		respondErrorCode(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
		return
	}

	var req models.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	applied, err := h.workflowSvc.ApplyStatusUpdate(r.Context(), id, actor, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	// Fire-and-forget: the reporter's notification must not delay or fail
	// the operator's request.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.notifySvc.NotifyStatusChange(ctx, applied.ReporterUserID, id, applied.ProtocolNumber, req.Status)
	}()

	respondMessage(w, http.StatusOK, "Complaint updated successfully")
}
