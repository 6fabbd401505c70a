package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/delciomanico/Monanji/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// detailStore maps one complaint type to its persistence behavior. Together
// with the decode registry in models this is the single place that knows
// which table and columns belong to each type; nothing else switches on the
// complaint type for storage.
type detailStore struct {
	insert func(ctx context.Context, tx pgx.Tx, complaintID uuid.UUID, detail models.TypeDetail) error
	load   func(ctx context.Context, q rowQuerier, complaintID uuid.UUID) (models.TypeDetail, error)
}

var detailStores = map[models.ComplaintType]detailStore{
	models.TypeMissingPerson:    {insert: insertMissingPerson, load: loadMissingPerson},
	models.TypeCommonCrime:      {insert: insertCommonCrime, load: loadCommonCrime},
	models.TypeCorruption:       {insert: insertCorruption, load: loadCorruption},
	models.TypeDomesticViolence: {insert: insertDomesticViolence, load: loadDomesticViolence},
	models.TypeCyberCrime:       {insert: insertCyberCrime, load: loadCyberCrime},
}

// insertTypeDetail writes the detail row matching the variant, in the same
// transaction as the base complaint row.
func insertTypeDetail(ctx context.Context, tx pgx.Tx, complaintID uuid.UUID, detail models.TypeDetail) error {
	store, ok := detailStores[detail.DetailType()]
	if !ok {
		return fmt.Errorf("no detail store for complaint type %q", detail.DetailType())
	}
	return store.insert(ctx, tx, complaintID, detail)
}

// loadTypeDetail reads the detail row for a complaint. A missing row yields
// an empty variant rather than an error, matching the read surface.
func loadTypeDetail(ctx context.Context, q rowQuerier, t models.ComplaintType, complaintID uuid.UUID) (models.TypeDetail, error) {
	store, ok := detailStores[t]
	if !ok {
		return nil, fmt.Errorf("no detail store for complaint type %q", t)
	}
	detail, err := store.load(ctx, q, complaintID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewTypeDetail(t)
	}
	return detail, err
}

const defaultCurrency = "AOA"

func insertMissingPerson(ctx context.Context, tx pgx.Tx, complaintID uuid.UUID, detail models.TypeDetail) error {
	d := detail.(*models.MissingPersonDetails)
	_, err := tx.Exec(ctx, `
		INSERT INTO missing_person_details (
			complaint_id, full_name, age, gender, physical_description,
			last_seen_location, last_seen_date, last_seen_time,
			clothing_description, last_seen_with, medical_conditions,
			frequent_places, relationship_to_reporter
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, complaintID, d.FullName, d.Age, d.Gender, d.PhysicalDescription,
		d.LastSeenLocation, d.LastSeenDate, d.LastSeenTime,
		d.ClothingDescription, d.LastSeenWith, d.MedicalConditions,
		d.FrequentPlaces, d.RelationshipToReporter)
	return err
}

func loadMissingPerson(ctx context.Context, q rowQuerier, complaintID uuid.UUID) (models.TypeDetail, error) {
	var d models.MissingPersonDetails
	err := q.QueryRow(ctx, `
		SELECT full_name, age, gender, physical_description,
			last_seen_location, last_seen_date, last_seen_time,
			clothing_description, last_seen_with, medical_conditions,
			frequent_places, relationship_to_reporter
		FROM missing_person_details WHERE complaint_id = $1
	`, complaintID).Scan(&d.FullName, &d.Age, &d.Gender, &d.PhysicalDescription,
		&d.LastSeenLocation, &d.LastSeenDate, &d.LastSeenTime,
		&d.ClothingDescription, &d.LastSeenWith, &d.MedicalConditions,
		&d.FrequentPlaces, &d.RelationshipToReporter)
	return &d, err
}

func insertCommonCrime(ctx context.Context, tx pgx.Tx, complaintID uuid.UUID, detail models.TypeDetail) error {
	d := detail.(*models.CommonCrimeDetails)
	_, err := tx.Exec(ctx, `
		INSERT INTO common_crime_details (
			complaint_id, crime_type, other_crime_type, brief_description, people_involved
		) VALUES ($1, $2, $3, $4, $5)
	`, complaintID, d.CrimeType, d.OtherCrimeType, d.BriefDescription, d.PeopleInvolved)
	return err
}

func loadCommonCrime(ctx context.Context, q rowQuerier, complaintID uuid.UUID) (models.TypeDetail, error) {
	var d models.CommonCrimeDetails
	err := q.QueryRow(ctx, `
		SELECT crime_type, other_crime_type, brief_description, people_involved
		FROM common_crime_details WHERE complaint_id = $1
	`, complaintID).Scan(&d.CrimeType, &d.OtherCrimeType, &d.BriefDescription, &d.PeopleInvolved)
	return &d, err
}

func insertCorruption(ctx context.Context, tx pgx.Tx, complaintID uuid.UUID, detail models.TypeDetail) error {
	d := detail.(*models.CorruptionDetails)
	currency := d.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO corruption_details (
			complaint_id, corruption_type, institution, official_name,
			estimated_amount, currency, how_known
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, complaintID, d.CorruptionType, d.Institution, d.OfficialName,
		d.EstimatedAmount, currency, d.HowKnown)
	return err
}

func loadCorruption(ctx context.Context, q rowQuerier, complaintID uuid.UUID) (models.TypeDetail, error) {
	var d models.CorruptionDetails
	err := q.QueryRow(ctx, `
		SELECT corruption_type, institution, official_name, estimated_amount, currency, how_known
		FROM corruption_details WHERE complaint_id = $1
	`, complaintID).Scan(&d.CorruptionType, &d.Institution, &d.OfficialName,
		&d.EstimatedAmount, &d.Currency, &d.HowKnown)
	return &d, err
}

func insertDomesticViolence(ctx context.Context, tx pgx.Tx, complaintID uuid.UUID, detail models.TypeDetail) error {
	d := detail.(*models.DomesticViolenceDetails)
	_, err := tx.Exec(ctx, `
		INSERT INTO domestic_violence_details (
			complaint_id, victim_name, victim_age, victim_gender,
			relationship_with_aggressor, violence_type, frequency,
			children_involved, needs_medical_help
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, complaintID, d.VictimName, d.VictimAge, d.VictimGender,
		d.RelationshipWithAggressor, d.ViolenceType, d.Frequency,
		d.ChildrenInvolved, d.NeedsMedicalHelp)
	return err
}

func loadDomesticViolence(ctx context.Context, q rowQuerier, complaintID uuid.UUID) (models.TypeDetail, error) {
	var d models.DomesticViolenceDetails
	err := q.QueryRow(ctx, `
		SELECT victim_name, victim_age, victim_gender, relationship_with_aggressor,
			violence_type, frequency, children_involved, needs_medical_help
		FROM domestic_violence_details WHERE complaint_id = $1
	`, complaintID).Scan(&d.VictimName, &d.VictimAge, &d.VictimGender, &d.RelationshipWithAggressor,
		&d.ViolenceType, &d.Frequency, &d.ChildrenInvolved, &d.NeedsMedicalHelp)
	return &d, err
}

func insertCyberCrime(ctx context.Context, tx pgx.Tx, complaintID uuid.UUID, detail models.TypeDetail) error {
	d := detail.(*models.CyberCrimeDetails)
	currency := d.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO cyber_crime_details (
			complaint_id, cyber_crime_type, platform, url,
			contact_method, suspect_info, estimated_loss, currency
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, complaintID, d.CyberCrimeType, d.Platform, d.URL,
		d.ContactMethod, d.SuspectInfo, d.EstimatedLoss, currency)
	return err
}

func loadCyberCrime(ctx context.Context, q rowQuerier, complaintID uuid.UUID) (models.TypeDetail, error) {
	var d models.CyberCrimeDetails
	err := q.QueryRow(ctx, `
		SELECT cyber_crime_type, platform, url, contact_method, suspect_info, estimated_loss, currency
		FROM cyber_crime_details WHERE complaint_id = $1
	`, complaintID).Scan(&d.CyberCrimeType, &d.Platform, &d.URL,
		&d.ContactMethod, &d.SuspectInfo, &d.EstimatedLoss, &d.Currency)
	return &d, err
}
