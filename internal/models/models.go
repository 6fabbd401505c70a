// Package models defines the data structures used across the application.
// These map to the PostgreSQL schema.
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ComplaintType is the closed set of complaint categories. Each type has a
// dedicated detail record (see details.go).
type ComplaintType string

const (
	TypeMissingPerson    ComplaintType = "missing-person"
	TypeCommonCrime      ComplaintType = "common-crime"
	TypeCorruption       ComplaintType = "corruption"
	TypeDomesticViolence ComplaintType = "domestic-violence"
	TypeCyberCrime       ComplaintType = "cyber-crime"
)

// ComplaintTypes lists all recognized complaint types.
var ComplaintTypes = []ComplaintType{
	TypeMissingPerson,
	TypeCommonCrime,
	TypeCorruption,
	TypeDomesticViolence,
	TypeCyberCrime,
}

// Valid reports whether t is a recognized complaint type.
func (t ComplaintType) Valid() bool {
	for _, known := range ComplaintTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Status is the closed set of complaint lifecycle statuses. Transitions are
// deliberately unconstrained: an investigator may set any recognized status,
// including re-opening an archived complaint.
type Status string

const (
	StatusSubmitted     Status = "submitted"
	StatusReceived      Status = "received"
	StatusReviewing     Status = "reviewing"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
	StatusArchived      Status = "archived"
)

// Statuses lists all recognized statuses.
var Statuses = []Status{
	StatusSubmitted,
	StatusReceived,
	StatusReviewing,
	StatusInvestigating,
	StatusResolved,
	StatusArchived,
}

// Valid reports whether s is a recognized status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// User roles.
const (
	RoleCitizen      = "citizen"
	RoleInvestigator = "investigator"
	RoleAdmin        = "admin"
)

// Complaint is the base complaint record. Reporter identity fields are all
// nil when IsAnonymous is true; that is enforced at creation and never
// relaxed afterwards.
type Complaint struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	ProtocolNumber string        `json:"protocol_number" db:"protocol_number"`
	ComplaintType  ComplaintType `json:"complaint_type" db:"complaint_type"`
	Status         Status        `json:"status" db:"status"`
	IsAnonymous    bool          `json:"is_anonymous" db:"is_anonymous"`

	ReporterUserID  *uuid.UUID `json:"reporter_user_id,omitempty" db:"reporter_user_id"`
	ReporterName    *string    `json:"reporter_name,omitempty" db:"reporter_name"`
	ReporterContact *string    `json:"reporter_contact,omitempty" db:"reporter_contact"`
	ReporterEmail   *string    `json:"reporter_email,omitempty" db:"reporter_email"`
	ReporterBI      *string    `json:"reporter_bi,omitempty" db:"reporter_bi"`

	IncidentDate *time.Time `json:"incident_date,omitempty" db:"incident_date"`
	IncidentTime *string    `json:"incident_time,omitempty" db:"incident_time"`
	Location     *string    `json:"location,omitempty" db:"location"`
	Description  string     `json:"description" db:"description"`
	Latitude     *float64   `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64   `json:"longitude,omitempty" db:"longitude"`

	InvestigatorID *uuid.UUID `json:"investigator_id,omitempty" db:"investigator_id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// StatusUpdate is an append-only timeline entry recording a status change.
// Entries are never mutated or deleted; every complaint has at least the
// initial "submitted" entry created in the same transaction as the base row.
type StatusUpdate struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	ComplaintID   uuid.UUID  `json:"complaint_id" db:"complaint_id"`
	Status        Status     `json:"status" db:"status"`
	Description   string     `json:"description" db:"update_description"`
	UpdatedBy     *uuid.UUID `json:"updated_by,omitempty" db:"updated_by"`
	UpdatedByName *string    `json:"updated_by_name,omitempty" db:"-"`
	IsPublic      bool       `json:"is_public" db:"is_public"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Evidence is a file attachment on a complaint. The file bytes live in the
// blob store; StorageKey references them.
type Evidence struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ComplaintID uuid.UUID  `json:"complaint_id" db:"complaint_id"`
	FileName    string     `json:"file_name" db:"file_name"`
	StorageKey  string     `json:"-" db:"file_path"`
	FileType    string     `json:"file_type" db:"file_type"`
	FileSize    int64      `json:"file_size" db:"file_size"`
	Description *string    `json:"description,omitempty" db:"description"`
	UploadedBy  *uuid.UUID `json:"uploaded_by,omitempty" db:"uploaded_by"`
	UploadedAt  time.Time  `json:"uploaded_at" db:"uploaded_at"`
}

// User is a registered account (citizen, investigator or admin).
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	BINumber     string    `json:"bi_number" db:"bi_number"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Notification is an in-app message for an account holder, typically fired
// when one of their complaints changes status.
type Notification struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	UserID            uuid.UUID  `json:"-" db:"user_id"`
	ComplaintID       *uuid.UUID `json:"-" db:"complaint_id"`
	Title             string     `json:"title" db:"title"`
	Message           string     `json:"message" db:"message"`
	NotificationType  string     `json:"type" db:"notification_type"`
	IsRead            bool       `json:"is_read" db:"is_read"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	ComplaintProtocol *string    `json:"complaint_protocol,omitempty" db:"-"`
}

// ComplaintSubmission is the request body for filing a new complaint.
// TypeDetails is decoded against ComplaintType after the envelope parses.
type ComplaintSubmission struct {
	ComplaintType   ComplaintType   `json:"complaint_type"`
	IsAnonymous     bool            `json:"is_anonymous"`
	IncidentDate    *string         `json:"incident_date,omitempty"`
	IncidentTime    *string         `json:"incident_time,omitempty"`
	Location        *string         `json:"location,omitempty"`
	Description     string          `json:"description"`
	Latitude        *float64        `json:"latitude,omitempty"`
	Longitude       *float64        `json:"longitude,omitempty"`
	ReporterName    *string         `json:"reporter_name,omitempty"`
	ReporterContact *string         `json:"reporter_contact,omitempty"`
	ReporterEmail   *string         `json:"reporter_email,omitempty"`
	ReporterBI      *string         `json:"reporter_bi,omitempty"`
	TypeDetails     json.RawMessage `json:"type_details,omitempty"`
}

// StatusUpdateRequest is the body of PUT /complaints/{id}/update.
type StatusUpdateRequest struct {
	Status      Status `json:"status"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public,omitempty"` // defaults to true
}

// InvestigatorContact is the assigned investigator's public contact info.
type InvestigatorContact struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email string  `json:"email"`
}

// TimelineEntry is a public status update as rendered in the composite view.
type TimelineEntry struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Status      Status  `json:"status"`
	Description string  `json:"description"`
	UpdatedBy   *string `json:"updated_by,omitempty"`
}

// ComplaintView is the composite read model returned by the protocol lookup:
// base fields, the type-specific detail, the public timeline (newest first),
// investigator contact if assigned, and the derived next-steps checklist.
// Reporter identity is intentionally absent: the view is also served to
// unauthenticated protocol holders.
type ComplaintView struct {
	ID             uuid.UUID            `json:"id"`
	ProtocolNumber string               `json:"protocol_number"`
	ComplaintType  ComplaintType        `json:"complaint_type"`
	Status         Status               `json:"status"`
	IsAnonymous    bool                 `json:"is_anonymous"`
	IncidentDate   *time.Time           `json:"incident_date,omitempty"`
	IncidentTime   *string              `json:"incident_time,omitempty"`
	Location       *string              `json:"location,omitempty"`
	Description    string               `json:"description"`
	CreatedAt      time.Time            `json:"created_at"`
	Investigator   *InvestigatorContact `json:"investigator,omitempty"`
	Updates        []TimelineEntry      `json:"updates"`
	NextSteps      []string             `json:"next_steps"`
	TypeDetails    TypeDetail           `json:"type_details,omitempty"`
}

// ComplaintSummary is one row of the "my complaints" listing, with a
// type-derived display name and brief info line.
type ComplaintSummary struct {
	ID             uuid.UUID     `json:"id"`
	ProtocolNumber string        `json:"protocol_number"`
	ComplaintType  ComplaintType `json:"complaint_type"`
	Status         Status        `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	DisplayName    string        `json:"display_name"`
	BriefInfo      string        `json:"brief_info"`
}

// Pagination describes a paginated response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// HealthStatus represents the server health check response
type HealthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache,omitempty"`
}
