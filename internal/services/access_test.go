package services

import (
	"testing"

	"github.com/delciomanico/Monanji/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func TestCanRead(t *testing.T) {
	reporterID := uuid.New()
	investigatorID := uuid.New()
	strangerID := uuid.New()

	base := func() *models.Complaint {
		return &models.Complaint{
			ID:             uuid.New(),
			ReporterUserID: uuidPtr(reporterID),
			ReporterBI:     strPtr("003456789LA042"),
			InvestigatorID: uuidPtr(investigatorID),
		}
	}

	t.Run("unauthenticated lookup is allowed", func(t *testing.T) {
		assert.True(t, CanRead(nil, base()))
	})

	t.Run("account-linked reporter", func(t *testing.T) {
		actor := &models.User{ID: reporterID, Role: models.RoleCitizen}
		assert.True(t, CanRead(actor, base()))
	})

	t.Run("assigned investigator", func(t *testing.T) {
		actor := &models.User{ID: investigatorID, Role: models.RoleInvestigator}
		assert.True(t, CanRead(actor, base()))
	})

	t.Run("unassigned investigator is refused", func(t *testing.T) {
		actor := &models.User{ID: strangerID, Role: models.RoleInvestigator}
		assert.False(t, CanRead(actor, base()))
	})

	t.Run("admin", func(t *testing.T) {
		actor := &models.User{ID: strangerID, Role: models.RoleAdmin}
		assert.True(t, CanRead(actor, base()))
	})

	t.Run("matching BI number", func(t *testing.T) {
		actor := &models.User{ID: strangerID, Role: models.RoleCitizen, BINumber: "003456789LA042"}
		assert.True(t, CanRead(actor, base()))
	})

	t.Run("mismatching BI number", func(t *testing.T) {
		actor := &models.User{ID: strangerID, Role: models.RoleCitizen, BINumber: "999999999ZZ999"}
		assert.False(t, CanRead(actor, base()))
	})

	t.Run("anonymous complaint never matches by BI", func(t *testing.T) {
		c := base()
		c.IsAnonymous = true
		c.ReporterUserID = nil
		c.ReporterBI = nil
		actor := &models.User{ID: strangerID, Role: models.RoleCitizen, BINumber: "003456789LA042"}
		assert.False(t, CanRead(actor, c))
	})

	t.Run("empty stored BI never matches empty actor BI", func(t *testing.T) {
		c := base()
		c.ReporterUserID = nil
		c.ReporterBI = strPtr("")
		actor := &models.User{ID: strangerID, Role: models.RoleCitizen, BINumber: ""}
		assert.False(t, CanRead(actor, c))
	})
}

func TestCanWriteStatus(t *testing.T) {
	assert.False(t, CanWriteStatus(nil))
	assert.False(t, CanWriteStatus(&models.User{Role: models.RoleCitizen}))
	assert.True(t, CanWriteStatus(&models.User{Role: models.RoleInvestigator}))
	assert.True(t, CanWriteStatus(&models.User{Role: models.RoleAdmin}))
}

func TestCanDeleteEvidence(t *testing.T) {
	uploaderID := uuid.New()
	reporterID := uuid.New()
	strangerID := uuid.New()

	ev := &models.Evidence{UploadedBy: uuidPtr(uploaderID)}
	c := &models.Complaint{ReporterUserID: uuidPtr(reporterID)}

	assert.False(t, CanDeleteEvidence(nil, ev, c))
	assert.True(t, CanDeleteEvidence(&models.User{ID: uploaderID, Role: models.RoleCitizen}, ev, c))
	assert.True(t, CanDeleteEvidence(&models.User{ID: reporterID, Role: models.RoleCitizen}, ev, c))
	assert.False(t, CanDeleteEvidence(&models.User{ID: strangerID, Role: models.RoleCitizen}, ev, c))
	assert.True(t, CanDeleteEvidence(&models.User{ID: strangerID, Role: models.RoleInvestigator}, ev, c))
	assert.True(t, CanDeleteEvidence(&models.User{ID: strangerID, Role: models.RoleAdmin}, ev, c))

	t.Run("anonymous upload only removable by staff", func(t *testing.T) {
		anonEv := &models.Evidence{}
		anonC := &models.Complaint{}
		assert.False(t, CanDeleteEvidence(&models.User{ID: strangerID, Role: models.RoleCitizen}, anonEv, anonC))
		assert.True(t, CanDeleteEvidence(&models.User{ID: strangerID, Role: models.RoleInvestigator}, anonEv, anonC))
	})
}
