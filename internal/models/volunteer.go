package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Volunteer represents a row in the 'volunteers' table
type Volunteer struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Email       string         `db:"email"`
	DisplayName string         `db:"display_name"`
	City        sql.NullString `db:"city"`
	State       sql.NullString `db:"state"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// NewVolunteer creates a new Volunteer with default values
func NewVolunteer(userID, displayName string) *Volunteer {
	now := time.Now().UTC()
	return &Volunteer{
		ID:          uuid.NewString(),
		UserID:      userID,
		DisplayName: displayName,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// VolunteerInterest represents a row in the 'volunteer_interests' table
type VolunteerInterest struct {
	ID            string         `db:"id"`
	VolunteerID   string         `db:"volunteer_id"`
	OpportunityID string         `db:"opportunity_id"`
	PostID        sql.NullString `db:"post_id"`
	Message       sql.NullString `db:"message"`
	Status        string         `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
}

// NewVolunteerInterest creates a new VolunteerInterest with default values
func NewVolunteerInterest(volunteerID, opportunityID string) *VolunteerInterest {
	return &VolunteerInterest{
		ID:            uuid.NewString(),
		VolunteerID:   volunteerID,
		OpportunityID: opportunityID,
		Status:        "pending",
		CreatedAt:     time.Now().UTC(),
	}
}
