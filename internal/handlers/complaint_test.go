package handlers

import (
	"testing"

	"github.com/delciomanico/Monanji/internal/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func validSubmission() models.ComplaintSubmission {
	return models.ComplaintSubmission{
		ComplaintType: models.TypeCommonCrime,
		Description:   "Assalto à mão armada na rua principal",
	}
}

func TestValidateSubmission(t *testing.T) {
	t.Run("minimal valid submission", func(t *testing.T) {
		req := validSubmission()
		assert.Empty(t, validateSubmission(&req))
	})

	t.Run("full valid submission", func(t *testing.T) {
		req := validSubmission()
		req.IncidentTime = strPtr("23:45")
		req.Location = strPtr("Rangel, Luanda")
		req.Latitude = floatPtr(-8.838)
		req.Longitude = floatPtr(13.234)
		assert.Empty(t, validateSubmission(&req))
	})

	tests := []struct {
		name   string
		mutate func(*models.ComplaintSubmission)
	}{
		{"unknown type", func(r *models.ComplaintSubmission) { r.ComplaintType = "vandalism" }},
		{"empty type", func(r *models.ComplaintSubmission) { r.ComplaintType = "" }},
		{"short description", func(r *models.ComplaintSubmission) { r.Description = "curto" }},
		{"bad time format", func(r *models.ComplaintSubmission) { r.IncidentTime = strPtr("25:00") }},
		{"time with seconds", func(r *models.ComplaintSubmission) { r.IncidentTime = strPtr("12:30:00") }},
		{"short location", func(r *models.ComplaintSubmission) { r.Location = strPtr("ab") }},
		{"latitude out of range", func(r *models.ComplaintSubmission) { r.Latitude = floatPtr(91) }},
		{"longitude out of range", func(r *models.ComplaintSubmission) { r.Longitude = floatPtr(-181) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmission()
			tt.mutate(&req)
			assert.NotEmpty(t, validateSubmission(&req))
		})
	}

	t.Run("single-digit hour accepted", func(t *testing.T) {
		req := validSubmission()
		req.IncidentTime = strPtr("9:05")
		assert.Empty(t, validateSubmission(&req))
	})

	t.Run("empty optional fields are not validated", func(t *testing.T) {
		req := validSubmission()
		req.IncidentTime = strPtr("")
		req.Location = strPtr("")
		assert.Empty(t, validateSubmission(&req))
	})
}
