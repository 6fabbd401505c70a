package models

import (
	"encoding/json"
	"fmt"
)

// TypeDetail is the closed tagged union of category-specific complaint
// detail records. Exactly one detail record exists per complaint and its
// variant always matches the complaint's type. New variants register in
// detailFactories; nothing else in the codebase switches on the type for
// detail behavior.
type TypeDetail interface {
	// DetailType returns the complaint type this variant belongs to.
	DetailType() ComplaintType
	// Summary derives the listing display name and brief info line.
	Summary(c *Complaint) (displayName, briefInfo string)
}

// detailFactories is the single registry mapping each complaint type to its
// detail variant constructor.
var detailFactories = map[ComplaintType]func() TypeDetail{
	TypeMissingPerson:    func() TypeDetail { return &MissingPersonDetails{} },
	TypeCommonCrime:      func() TypeDetail { return &CommonCrimeDetails{} },
	TypeCorruption:       func() TypeDetail { return &CorruptionDetails{} },
	TypeDomesticViolence: func() TypeDetail { return &DomesticViolenceDetails{} },
	TypeCyberCrime:       func() TypeDetail { return &CyberCrimeDetails{} },
}

// NewTypeDetail returns an empty detail variant for the given complaint type.
func NewTypeDetail(t ComplaintType) (TypeDetail, error) {
	factory, ok := detailFactories[t]
	if !ok {
		return nil, fmt.Errorf("unrecognized complaint type %q", t)
	}
	return factory(), nil
}

// DecodeTypeDetail decodes raw JSON into the detail variant matching t.
// An unrecognized type is rejected before any field is touched.
func DecodeTypeDetail(t ComplaintType, raw json.RawMessage) (TypeDetail, error) {
	detail, err := NewTypeDetail(t)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return detail, nil
	}
	if err := json.Unmarshal(raw, detail); err != nil {
		return nil, fmt.Errorf("decode %s details: %w", t, err)
	}
	return detail, nil
}

// MissingPersonDetails describes a missing person report.
type MissingPersonDetails struct {
	FullName               string  `json:"full_name" db:"full_name"`
	Age                    *int    `json:"age,omitempty" db:"age"`
	Gender                 *string `json:"gender,omitempty" db:"gender"`
	PhysicalDescription    *string `json:"physical_description,omitempty" db:"physical_description"`
	LastSeenLocation       *string `json:"last_seen_location,omitempty" db:"last_seen_location"`
	LastSeenDate           *string `json:"last_seen_date,omitempty" db:"last_seen_date"`
	LastSeenTime           *string `json:"last_seen_time,omitempty" db:"last_seen_time"`
	ClothingDescription    *string `json:"clothing_description,omitempty" db:"clothing_description"`
	LastSeenWith           *string `json:"last_seen_with,omitempty" db:"last_seen_with"`
	MedicalConditions      *string `json:"medical_conditions,omitempty" db:"medical_conditions"`
	FrequentPlaces         *string `json:"frequent_places,omitempty" db:"frequent_places"`
	RelationshipToReporter *string `json:"relationship_to_reporter,omitempty" db:"relationship_to_reporter"`
}

func (*MissingPersonDetails) DetailType() ComplaintType { return TypeMissingPerson }

func (d *MissingPersonDetails) Summary(c *Complaint) (string, string) {
	name := d.FullName
	if name == "" {
		name = "Pessoa desaparecida"
	}
	lastSeen := "Data não informada"
	if c.IncidentDate != nil {
		lastSeen = c.IncidentDate.Format("2006-01-02")
	}
	return name, "Última vez vista: " + lastSeen
}

// CommonCrimeDetails describes an ordinary crime report.
type CommonCrimeDetails struct {
	CrimeType        string  `json:"crime_type" db:"crime_type"`
	OtherCrimeType   *string `json:"other_crime_type,omitempty" db:"other_crime_type"`
	BriefDescription *string `json:"brief_description,omitempty" db:"brief_description"`
	PeopleInvolved   *string `json:"people_involved,omitempty" db:"people_involved"`
}

func (*CommonCrimeDetails) DetailType() ComplaintType { return TypeCommonCrime }

func (d *CommonCrimeDetails) Summary(c *Complaint) (string, string) {
	name := d.CrimeType
	if name == "" {
		name = "Crime comum"
	}
	location := "Local não informado"
	if c.Location != nil && *c.Location != "" {
		location = *c.Location
	}
	return name, "Local: " + location
}

// CorruptionDetails describes a corruption report.
type CorruptionDetails struct {
	CorruptionType  string   `json:"corruption_type" db:"corruption_type"`
	Institution     *string  `json:"institution,omitempty" db:"institution"`
	OfficialName    *string  `json:"official_name,omitempty" db:"official_name"`
	EstimatedAmount *float64 `json:"estimated_amount,omitempty" db:"estimated_amount"`
	Currency        string   `json:"currency,omitempty" db:"currency"`
	HowKnown        *string  `json:"how_known,omitempty" db:"how_known"`
}

func (*CorruptionDetails) DetailType() ComplaintType { return TypeCorruption }

func (d *CorruptionDetails) Summary(_ *Complaint) (string, string) {
	institution := "Não informada"
	name := "Corrupção"
	if d.Institution != nil && *d.Institution != "" {
		institution = *d.Institution
		name = *d.Institution
	}
	return name, "Instituição: " + institution
}

// DomesticViolenceDetails describes a domestic violence report.
type DomesticViolenceDetails struct {
	VictimName                *string `json:"victim_name,omitempty" db:"victim_name"`
	VictimAge                 *int    `json:"victim_age,omitempty" db:"victim_age"`
	VictimGender              *string `json:"victim_gender,omitempty" db:"victim_gender"`
	RelationshipWithAggressor *string `json:"relationship_with_aggressor,omitempty" db:"relationship_with_aggressor"`
	ViolenceType              string  `json:"violence_type" db:"violence_type"`
	Frequency                 *string `json:"frequency,omitempty" db:"frequency"`
	ChildrenInvolved          *bool   `json:"children_involved,omitempty" db:"children_involved"`
	NeedsMedicalHelp          *bool   `json:"needs_medical_help,omitempty" db:"needs_medical_help"`
}

func (*DomesticViolenceDetails) DetailType() ComplaintType { return TypeDomesticViolence }

func (d *DomesticViolenceDetails) Summary(_ *Complaint) (string, string) {
	victim := "Não informada"
	name := "Violência doméstica"
	if d.VictimName != nil && *d.VictimName != "" {
		victim = *d.VictimName
		name = *d.VictimName
	}
	return name, "Vítima: " + victim
}

// CyberCrimeDetails describes a cyber crime report.
type CyberCrimeDetails struct {
	CyberCrimeType string   `json:"cyber_crime_type" db:"cyber_crime_type"`
	Platform       *string  `json:"platform,omitempty" db:"platform"`
	URL            *string  `json:"url,omitempty" db:"url"`
	ContactMethod  *string  `json:"contact_method,omitempty" db:"contact_method"`
	SuspectInfo    *string  `json:"suspect_info,omitempty" db:"suspect_info"`
	EstimatedLoss  *float64 `json:"estimated_loss,omitempty" db:"estimated_loss"`
	Currency       string   `json:"currency,omitempty" db:"currency"`
}

func (*CyberCrimeDetails) DetailType() ComplaintType { return TypeCyberCrime }

func (d *CyberCrimeDetails) Summary(_ *Complaint) (string, string) {
	name := d.CyberCrimeType
	if name == "" {
		name = "Crime cibernético"
	}
	info := "Não informado"
	if d.CyberCrimeType != "" {
		info = d.CyberCrimeType
	}
	return name, "Tipo: " + info
}
