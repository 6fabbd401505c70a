package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/delciomanico/Monanji/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSteps(t *testing.T) {
	t.Run("empty unless investigating", func(t *testing.T) {
		for _, s := range models.Statuses {
			if s == models.StatusInvestigating {
				continue
			}
			assert.Empty(t, NextSteps(models.TypeMissingPerson, s), "status %s", s)
		}
	})

	t.Run("missing person checklist", func(t *testing.T) {
		steps := NextSteps(models.TypeMissingPerson, models.StatusInvestigating)
		assert.Equal(t, missingPersonNextSteps, steps)
	})

	t.Run("generic checklist for other types", func(t *testing.T) {
		for _, typ := range []models.ComplaintType{
			models.TypeCommonCrime, models.TypeCorruption,
			models.TypeDomesticViolence, models.TypeCyberCrime,
		} {
			assert.Equal(t, genericNextSteps, NextSteps(typ, models.StatusInvestigating))
		}
	})
}

func TestBuildCompositeView(t *testing.T) {
	now := time.Now()
	name := "Agente Silva"
	c := &models.Complaint{
		ID:             uuid.New(),
		ProtocolNumber: "DENUNCIA-20250307-0001",
		ComplaintType:  models.TypeCommonCrime,
		Status:         models.StatusInvestigating,
		Description:    "Assalto na via pública",
		ReporterName:   strPtr("José Manuel"),
		ReporterBI:     strPtr("003456789LA042"),
		CreatedAt:      now,
	}
	detail := &models.CommonCrimeDetails{CrimeType: "Roubo"}
	updates := []models.StatusUpdate{
		{Status: models.StatusInvestigating, Description: "Equipa no terreno", IsPublic: true, CreatedAt: now},
		{Status: models.StatusReviewing, Description: "Nota interna", IsPublic: false, CreatedAt: now.Add(-time.Hour)},
		{Status: models.StatusSubmitted, Description: "Denúncia submetida e registrada no sistema", IsPublic: true, UpdatedByName: &name, CreatedAt: now.Add(-2 * time.Hour)},
	}

	view := BuildCompositeView(c, detail, updates, &models.InvestigatorContact{Name: name, Email: "silva@policia.gov.ao"})

	t.Run("non-public updates are excluded entirely", func(t *testing.T) {
		require.Len(t, view.Updates, 2)
		for _, entry := range view.Updates {
			assert.NotEqual(t, "Nota interna", entry.Description)
		}
	})

	t.Run("timeline order follows input, dates formatted", func(t *testing.T) {
		assert.Equal(t, models.StatusInvestigating, view.Updates[0].Status)
		assert.Equal(t, now.Format("2006-01-02"), view.Updates[0].Date)
		assert.Equal(t, &name, view.Updates[1].UpdatedBy)
	})

	t.Run("next steps derived from type and status", func(t *testing.T) {
		assert.Equal(t, genericNextSteps, view.NextSteps)
	})

	t.Run("reporter identity never serialized", func(t *testing.T) {
		raw, err := json.Marshal(view)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "José Manuel")
		assert.NotContains(t, string(raw), "003456789LA042")
	})

	t.Run("investigator contact attached", func(t *testing.T) {
		require.NotNil(t, view.Investigator)
		assert.Equal(t, name, view.Investigator.Name)
	})

	t.Run("no updates yields empty slice, not nil", func(t *testing.T) {
		v := BuildCompositeView(c, detail, nil, nil)
		assert.NotNil(t, v.Updates)
		assert.Empty(t, v.Updates)
	})
}
