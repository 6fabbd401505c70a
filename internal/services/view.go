package services

import (
	"github.com/delciomanico/Monanji/internal/models"
)

// Next-steps checklists shown to the citizen while a complaint is under
// investigation. Derived presentation data, never persisted.
var missingPersonNextSteps = []string{
	"Busca nas áreas frequentadas pela pessoa",
	"Contacto com familiares e amigos",
	"Verificação em hospitais e centros de saúde",
	"Divulgação da foto nos postos policiais",
}

var genericNextSteps = []string{
	"Recolha de provas adicionais",
	"Entrevistas com testemunhas",
	"Análise técnica das evidências",
}

// NextSteps returns the checklist for a complaint type, shown only while
// the complaint is in the investigating status.
func NextSteps(t models.ComplaintType, s models.Status) []string {
	if s != models.StatusInvestigating {
		return []string{}
	}
	if t == models.TypeMissingPerson {
		return missingPersonNextSteps
	}
	return genericNextSteps
}

// BuildCompositeView assembles the citizen-facing view of a complaint:
// base fields, the type-specific detail, the public timeline newest first,
// investigator contact when assigned, and the derived next steps. Non-public
// updates are excluded entirely; there is no partial redaction. Reporter
// identity fields never appear in the view regardless of caller.
func BuildCompositeView(c *models.Complaint, detail models.TypeDetail, updates []models.StatusUpdate, investigator *models.InvestigatorContact) *models.ComplaintView {
	timeline := make([]models.TimelineEntry, 0, len(updates))
	for _, u := range updates {
		if !u.IsPublic {
			continue
		}
		timeline = append(timeline, models.TimelineEntry{
			Date:        u.CreatedAt.Format("2006-01-02"),
			Status:      u.Status,
			Description: u.Description,
			UpdatedBy:   u.UpdatedByName,
		})
	}

	return &models.ComplaintView{
		ID:             c.ID,
		ProtocolNumber: c.ProtocolNumber,
		ComplaintType:  c.ComplaintType,
		Status:         c.Status,
		IsAnonymous:    c.IsAnonymous,
		IncidentDate:   c.IncidentDate,
		IncidentTime:   c.IncidentTime,
		Location:       c.Location,
		Description:    c.Description,
		CreatedAt:      c.CreatedAt,
		Investigator:   investigator,
		Updates:        timeline,
		NextSteps:      NextSteps(c.ComplaintType, c.Status),
		TypeDetails:    detail,
	}
}
