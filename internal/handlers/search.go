package handlers

import (
	"net/http"
	"strconv"

	"github.com/delciomanico/Monanji/internal/models"
	"github.com/delciomanico/Monanji/internal/services"
	"go.uber.org/zap"
)

// SearchHandler serves the public missing-persons search.
type SearchHandler struct {
	searchSvc *services.SearchService
	logger    *zap.SugaredLogger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(ss *services.SearchService, logger *zap.SugaredLogger) *SearchHandler {
	return &SearchHandler{searchSvc: ss, logger: logger}
}

// MissingPersons handles GET /api/v1/search/missing-persons
func (h *SearchHandler) MissingPersons(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := services.MissingPersonQuery{
		Query:    params.Get("q"),
		Gender:   params.Get("gender"),
		Province: params.Get("province"),
		Status:   models.Status(params.Get("status")),
	}
	q.Page, _ = strconv.Atoi(params.Get("page"))
	q.Limit, _ = strconv.Atoi(params.Get("limit"))

	if q.Query != "" && len(q.Query) < 2 {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Search query must be at least 2 characters")
		return
	}
	if q.Status != "" && !q.Status.Valid() {
		respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unrecognized status filter")
		return
	}
	for _, bound := range []struct {
		key  string
		dest **int
	}{{"age_min", &q.AgeMin}, {"age_max", &q.AgeMax}} {
		if raw := params.Get(bound.key); raw != "" {
			age, err := strconv.Atoi(raw)
			if err != nil || age < 0 || age > 150 {
				respondErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+bound.key)
				return
			}
			*bound.dest = &age
		}
	}

	results, pagination, err := h.searchSvc.MissingPersons(r.Context(), q)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"missing_persons": results,
		"pagination":      pagination,
	})
}
