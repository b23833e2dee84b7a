package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"scrollforcause/platform/internal/auth"
	"scrollforcause/platform/internal/feed"
	"scrollforcause/platform/internal/models"
	"scrollforcause/platform/internal/server/storage"
)

const maxVolunteerCategories = 10

// RegisterVolunteerRequest is the volunteer signup payload.
type RegisterVolunteerRequest struct {
	DisplayName string   `json:"displayName"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	CategoryIDs []string `json:"categoryIds"`
}

// RegisterVolunteerResponse confirms a created volunteer profile.
type RegisterVolunteerResponse struct {
	VolunteerID string `json:"volunteerId"`
	DisplayName string `json:"displayName"`
}

// VolunteerHandler serves volunteer registration.
type VolunteerHandler struct {
	volunteers storage.VolunteerRepository
	categories storage.CategoryRepository
}

// NewVolunteerHandler creates a new handler instance.
func NewVolunteerHandler(volunteers storage.VolunteerRepository, categories storage.CategoryRepository) *VolunteerHandler {
	return &VolunteerHandler{volunteers: volunteers, categories: categories}
}

func (req *RegisterVolunteerRequest) validate() *feed.ValidationError {
	var details []feed.FieldError
	if req.DisplayName == "" || len(req.DisplayName) > 100 {
		details = append(details, feed.FieldError{Field: "displayName", Message: "displayName is required, at most 100 characters"})
	}
	if req.City == "" || len(req.City) > 100 {
		details = append(details, feed.FieldError{Field: "city", Message: "city is required, at most 100 characters"})
	}
	if req.State == "" || len(req.State) > 50 {
		details = append(details, feed.FieldError{Field: "state", Message: "state is required, at most 50 characters"})
	}
	if len(req.CategoryIDs) > maxVolunteerCategories {
		details = append(details, feed.FieldError{Field: "categoryIds", Message: "at most 10 categories are allowed"})
	}
	if details != nil {
		return &feed.ValidationError{Details: details}
	}
	return nil
}

// RegisterVolunteer creates the caller's volunteer profile.
func (h *VolunteerHandler) RegisterVolunteer(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	var req RegisterVolunteerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, feed.NewValidationError("body", "request body must be valid JSON"))
		return
	}
	if valErr := req.validate(); valErr != nil {
		writeError(w, r, valErr)
		return
	}

	identity, _ := auth.FromContext(r.Context())

	exists, err := h.volunteers.ExistsByUserID(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if exists {
		writeErrorCode(w, r, http.StatusConflict, "DUPLICATE_VOLUNTEER",
			"A volunteer profile already exists for this user.", nil)
		return
	}

	categoryIDs := dedupe(req.CategoryIDs)
	if len(categoryIDs) > 0 {
		valid, err := h.categories.CountActiveIn(r.Context(), categoryIDs)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if valid != len(categoryIDs) {
			writeErrorCode(w, r, http.StatusBadRequest, "INVALID_CATEGORY",
				"One or more category IDs are invalid.", nil)
			return
		}
	}

	volunteer := models.NewVolunteer(identity.UserID, sanitize(req.DisplayName))
	volunteer.City.String, volunteer.City.Valid = sanitize(req.City), true
	volunteer.State.String, volunteer.State.Valid = sanitize(req.State), true

	if err := h.volunteers.Create(r.Context(), volunteer, categoryIDs); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("volunteer_id", volunteer.ID).Msg("Volunteer registered")
	writeJSON(w, r, http.StatusCreated, RegisterVolunteerResponse{
		VolunteerID: volunteer.ID,
		DisplayName: volunteer.DisplayName,
	})
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
