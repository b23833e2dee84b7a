package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Organization verification statuses
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// Organization represents a row in the 'organizations' table
type Organization struct {
	ID                 string         `db:"id"`
	UserID             string         `db:"user_id"` // subject issued by the external identity provider
	Name               string         `db:"name"`
	EIN                string         `db:"ein"`
	Description        string         `db:"description"`
	ContactName        string         `db:"contact_name"`
	ContactEmail       string         `db:"contact_email"`
	WebsiteURL         sql.NullString `db:"website_url"`
	LogoURL            sql.NullString `db:"logo_url"`
	CoverImageURL      sql.NullString `db:"cover_image_url"`
	City               sql.NullString `db:"city"`
	State              sql.NullString `db:"state"`
	VerificationStatus string         `db:"verification_status"`
	VerifiedAt         sql.NullTime   `db:"verified_at"`
	FollowerCount      int            `db:"follower_count"`
	IsActive           bool           `db:"is_active"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// NewOrganization creates a new Organization with default values
func NewOrganization(userID, name string) *Organization {
	now := time.Now().UTC()
	return &Organization{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Name:               name,
		VerificationStatus: VerificationPending,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// IsVerified reports whether the organization has passed moderation review.
func (o *Organization) IsVerified() bool {
	return o.VerificationStatus == VerificationVerified
}
