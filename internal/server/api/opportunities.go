package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"scrollforcause/platform/internal/auth"
	"scrollforcause/platform/internal/feed"
	"scrollforcause/platform/internal/models"
	"scrollforcause/platform/internal/server/storage"
)

// CreateOpportunityRequest is the opportunity creation payload.
type CreateOpportunityRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	LocationAddress  *string    `json:"locationAddress"`
	IsRemote         bool       `json:"isRemote"`
	ScheduleType     string     `json:"scheduleType"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	RecurrenceDesc   *string    `json:"recurrenceDesc"`
	VolunteersNeeded *int       `json:"volunteersNeeded"`
	TimeCommitment   *string    `json:"timeCommitment"`
	SkillsRequired   *string    `json:"skillsRequired"`
	MinimumAge       *int       `json:"minimumAge"`
}

// CreateOpportunityResponse confirms a created opportunity.
type CreateOpportunityResponse struct {
	OpportunityID string `json:"opportunityId"`
	Status        string `json:"status"`
}

// OpportunityHandler serves opportunity creation for organizations.
type OpportunityHandler struct {
	orgs          storage.OrganizationRepository
	opportunities storage.OpportunityRepository
}

// NewOpportunityHandler creates a new handler instance.
func NewOpportunityHandler(orgs storage.OrganizationRepository, opportunities storage.OpportunityRepository) *OpportunityHandler {
	return &OpportunityHandler{orgs: orgs, opportunities: opportunities}
}

func validScheduleType(s string) bool {
	switch s {
	case models.ScheduleOneTime, models.ScheduleRecurring, models.ScheduleFlexible:
		return true
	}
	return false
}

func (req *CreateOpportunityRequest) validate() *feed.ValidationError {
	var details []feed.FieldError
	if req.Title == "" || len(req.Title) > 200 {
		details = append(details, feed.FieldError{Field: "title", Message: "title is required, at most 200 characters"})
	}
	if req.Description == "" || len(req.Description) > 5000 {
		details = append(details, feed.FieldError{Field: "description", Message: "description is required, at most 5000 characters"})
	}
	if !validScheduleType(req.ScheduleType) {
		details = append(details, feed.FieldError{Field: "scheduleType", Message: "scheduleType must be one of: one_time, recurring, flexible"})
	}
	if req.ScheduleType == models.ScheduleOneTime && req.StartDate == nil {
		details = append(details, feed.FieldError{Field: "startDate", Message: "startDate is required for one_time schedule type"})
	}
	if req.LocationAddress != nil && len(*req.LocationAddress) > 500 {
		details = append(details, feed.FieldError{Field: "locationAddress", Message: "locationAddress is at most 500 characters"})
	}
	if req.RecurrenceDesc != nil && len(*req.RecurrenceDesc) > 500 {
		details = append(details, feed.FieldError{Field: "recurrenceDesc", Message: "recurrenceDesc is at most 500 characters"})
	}
	if req.TimeCommitment != nil && len(*req.TimeCommitment) > 100 {
		details = append(details, feed.FieldError{Field: "timeCommitment", Message: "timeCommitment is at most 100 characters"})
	}
	if req.SkillsRequired != nil && len(*req.SkillsRequired) > 500 {
		details = append(details, feed.FieldError{Field: "skillsRequired", Message: "skillsRequired is at most 500 characters"})
	}
	if req.MinimumAge != nil && (*req.MinimumAge < 1 || *req.MinimumAge > 120) {
		details = append(details, feed.FieldError{Field: "minimumAge", Message: "minimumAge must be between 1 and 120"})
	}
	if req.VolunteersNeeded != nil && *req.VolunteersNeeded <= 0 {
		details = append(details, feed.FieldError{Field: "volunteersNeeded", Message: "volunteersNeeded must be greater than 0"})
	}
	if details != nil {
		return &feed.ValidationError{Details: details}
	}
	return nil
}

// CreateOpportunity creates an opportunity owned by the caller's verified
// organization.
func (h *OpportunityHandler) CreateOpportunity(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	var req CreateOpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, feed.NewValidationError("body", "request body must be valid JSON"))
		return
	}
	if valErr := req.validate(); valErr != nil {
		writeError(w, r, valErr)
		return
	}

	identity, _ := auth.FromContext(r.Context())

	org, err := h.orgs.GetByUserID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorCode(w, r, http.StatusNotFound, "ORG_NOT_FOUND", "Organization not found.", nil)
			return
		}
		writeError(w, r, err)
		return
	}

	if !org.IsVerified() {
		writeErrorCode(w, r, http.StatusForbidden, "ORG_NOT_VERIFIED",
			"Only verified organizations can create opportunities.", nil)
		return
	}

	opp := models.NewOpportunity(org.ID, sanitize(req.Title))
	opp.Description = sanitize(req.Description)
	opp.ScheduleType = req.ScheduleType
	opp.IsRemote = req.IsRemote
	setNullString(&opp.LocationAddress, sanitizePtr(req.LocationAddress))
	setNullString(&opp.RecurrenceDesc, sanitizePtr(req.RecurrenceDesc))
	setNullString(&opp.TimeCommitment, sanitizePtr(req.TimeCommitment))
	setNullString(&opp.SkillsRequired, sanitizePtr(req.SkillsRequired))
	if req.StartDate != nil {
		opp.StartDate.Time, opp.StartDate.Valid = req.StartDate.UTC(), true
	}
	if req.EndDate != nil {
		opp.EndDate.Time, opp.EndDate.Valid = req.EndDate.UTC(), true
	}
	if req.VolunteersNeeded != nil {
		opp.VolunteersNeeded.Int64, opp.VolunteersNeeded.Valid = int64(*req.VolunteersNeeded), true
	}
	if req.MinimumAge != nil {
		opp.MinimumAge.Int64, opp.MinimumAge.Valid = int64(*req.MinimumAge), true
	}

	if err := h.opportunities.Create(r.Context(), opp); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().
		Str("opportunity_id", opp.ID).
		Str("organization_id", org.ID).
		Msg("Opportunity created")
	writeJSON(w, r, http.StatusCreated, CreateOpportunityResponse{
		OpportunityID: opp.ID,
		Status:        opp.Status,
	})
}
