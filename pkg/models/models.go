package models

import "github.com/careerforge/backend/internal/stage"

// Domain models matching the database schema in db/migrations/0001_init.sql

// Platform discriminates the two sides of the marketplace.
const (
	PlatformCareerForge = "careerforge"
	PlatformTalentHub   = "talenthub"
)

type User struct {
	ID           string `json:"id" db:"id"`
	Platform     string `json:"platform" db:"platform"`
	FirstName    string `json:"first_name" db:"first_name" validate:"required"`
	LastName     string `json:"last_name" db:"last_name"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	PasswordHash string `json:"-" db:"password_hash"`
	JobTitle     string `json:"job_title,omitempty" db:"job_title"`
	Created      int64  `json:"created" db:"created"`
	Updated      int64  `json:"updated" db:"updated"`
}

// Organization is the recruiter-side company profile; one per TalentHub user.
type Organization struct {
	ID          string `json:"id" db:"id"`
	CreatedBy   string `json:"created_by" db:"created_by"`
	Name        string `json:"name" db:"name" validate:"required"`
	LogoURL     string `json:"logo_url,omitempty" db:"logo_url"`
	Website     string `json:"website,omitempty" db:"website"`
	Description string `json:"description,omitempty" db:"description"`
	City        string `json:"city,omitempty" db:"city"`
	State       string `json:"state,omitempty" db:"state"`
	Country     string `json:"country,omitempty" db:"country"`
	Created     int64  `json:"created" db:"created"`
	Updated     int64  `json:"updated" db:"updated"`
}

// Position is a job listing owned by a recruiter and linked to their
// organization.
type Position struct {
	ID                string   `json:"id" db:"id"`
	UserID            string   `json:"user_id" db:"user_id"`
	OrganizationID    string   `json:"organization_id" db:"organization_id"`
	Title             string   `json:"title" db:"title" validate:"required"`
	JobCategory       string   `json:"job_category" db:"job_category"`
	PositionType      string   `json:"position_type" db:"position_type"`
	LevelOfExperience string   `json:"level_of_experience,omitempty" db:"level_of_experience"`
	RoleDescription   string   `json:"role_description,omitempty" db:"role_description"`
	WorkplaceType     string   `json:"workplace_type,omitempty" db:"workplace_type"`
	City              string   `json:"city,omitempty" db:"city"`
	State             string   `json:"state,omitempty" db:"state"`
	Country           string   `json:"country,omitempty" db:"country"`
	MinimumPay        *float64 `json:"minimum_pay,omitempty" db:"minimum_pay"`
	MaximumPay        *float64 `json:"maximum_pay,omitempty" db:"maximum_pay"`
	PayFrequency      string   `json:"pay_frequency,omitempty" db:"pay_frequency"`
	ClosingDate       string   `json:"closing_date,omitempty" db:"closing_date"`
	ExternalLink      string   `json:"external_link,omitempty" db:"external_link"`
	Status            string   `json:"status,omitempty" db:"status"`
	Created           int64    `json:"created" db:"created"`
	Updated           int64    `json:"updated" db:"updated"`
}

// PositionInfo is the display metadata attached to tracked-application
// responses: what the candidate sees on their board without a second lookup.
type PositionInfo struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	OrganizationName string `json:"organization_name"`
	OrganizationLogo string `json:"organization_logo_url,omitempty"`
	PositionType     string `json:"position_type,omitempty"`
	WorkplaceType    string `json:"workplace_type,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	Country          string `json:"country,omitempty"`
}

// TrackedApplication links one user, one position, and one stage map plus
// free-text metadata. Exactly one row exists per (user, position) pair.
type TrackedApplication struct {
	ID          string        `json:"id" db:"id"`
	UserID      string        `json:"user_id" db:"user_id"`
	PositionID  string        `json:"position_id" db:"position_id"`
	Activity    string        `json:"activity,omitempty" db:"activity"`
	Reaction    string        `json:"reaction,omitempty" db:"reaction"`
	Notes       string        `json:"notes,omitempty" db:"notes"`
	Stage       stage.Map     `json:"stage" db:"stage"`
	IsFavourite bool          `json:"is_favourite" db:"is_favourite"`
	Created     int64         `json:"created" db:"created"`
	Updated     int64         `json:"updated" db:"updated"`
	Position    *PositionInfo `json:"job_info,omitempty" db:"-"`
}

type Milestone struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"user_id" db:"user_id"`
	Name        string          `json:"name" db:"name" validate:"required"`
	Type        string          `json:"type,omitempty" db:"type"`
	Description string          `json:"description,omitempty" db:"description"`
	Tasks       map[string]bool `json:"tasks,omitempty" db:"tasks"`
	IsCompleted bool            `json:"is_completed" db:"is_completed"`
	Created     int64           `json:"created" db:"created"`
	Updated     int64           `json:"updated" db:"updated"`
}

// Schema is a stored JSON Schema used to validate LLM output.
type Schema struct {
	ID          int64  `json:"id" db:"id"`
	Version     string `json:"version" db:"version"`
	Description string `json:"description,omitempty" db:"description"`
	SchemaJSON  string `json:"schema_json" db:"schema_json"`
	Created     int64  `json:"created" db:"created"`
	Updated     int64  `json:"updated" db:"updated"`
}
