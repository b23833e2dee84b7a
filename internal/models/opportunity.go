package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Opportunity schedule types
const (
	ScheduleOneTime   = "one_time"
	ScheduleRecurring = "recurring"
	ScheduleFlexible  = "flexible"
)

// Opportunity represents a row in the 'opportunities' table
type Opportunity struct {
	ID               string         `db:"id"`
	OrganizationID   string         `db:"organization_id"`
	Title            string         `db:"title"`
	Description      string         `db:"description"`
	LocationAddress  sql.NullString `db:"location_address"`
	IsRemote         bool           `db:"is_remote"`
	ScheduleType     string         `db:"schedule_type"`
	StartDate        sql.NullTime   `db:"start_date"`
	EndDate          sql.NullTime   `db:"end_date"`
	RecurrenceDesc   sql.NullString `db:"recurrence_desc"`
	VolunteersNeeded sql.NullInt64  `db:"volunteers_needed"`
	TimeCommitment   sql.NullString `db:"time_commitment"`
	SkillsRequired   sql.NullString `db:"skills_required"`
	MinimumAge       sql.NullInt64  `db:"minimum_age"`
	Status           string         `db:"status"`
	InterestCount    int            `db:"interest_count"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// NewOpportunity creates a new Opportunity with default values
func NewOpportunity(organizationID, title string) *Opportunity {
	now := time.Now().UTC()
	return &Opportunity{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Title:          title,
		ScheduleType:   ScheduleFlexible,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
