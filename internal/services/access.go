package services

import (
	"github.com/delciomanico/Monanji/internal/models"
)

// Access rules are pure functions over the loaded records so they can be
// checked anywhere a complaint or evidence row is already in hand.

// CanRead reports whether actor may see a complaint. Unauthenticated actors
// may always read: complaints are discoverable by protocol number alone, so
// the lookup itself is the credential. An authenticated actor must be the
// account-linked reporter, the assigned investigator, an admin, or hold the
// BI number of a non-anonymous reporter. Anonymous complaints store a nil
// reporter BI, so the BI path can never match for them; that is the
// confidentiality guarantee, not an oversight.
func CanRead(actor *models.User, c *models.Complaint) bool {
	if actor == nil {
		return true
	}
	if c.ReporterUserID != nil && *c.ReporterUserID == actor.ID {
		return true
	}
	if c.InvestigatorID != nil && *c.InvestigatorID == actor.ID {
		return true
	}
	if actor.Role == models.RoleAdmin {
		return true
	}
	if c.ReporterBI != nil && *c.ReporterBI != "" && *c.ReporterBI == actor.BINumber {
		return true
	}
	return false
}

// CanWriteStatus reports whether actor may apply status updates.
func CanWriteStatus(actor *models.User) bool {
	return actor != nil && (actor.Role == models.RoleInvestigator || actor.Role == models.RoleAdmin)
}

// CanDeleteEvidence reports whether actor may remove an evidence file:
// the uploader, the complaint's account-linked reporter, or any
// investigator/admin.
func CanDeleteEvidence(actor *models.User, ev *models.Evidence, c *models.Complaint) bool {
	if actor == nil {
		return false
	}
	if ev.UploadedBy != nil && *ev.UploadedBy == actor.ID {
		return true
	}
	if c.ReporterUserID != nil && *c.ReporterUserID == actor.ID {
		return true
	}
	return actor.Role == models.RoleAdmin || actor.Role == models.RoleInvestigator
}
