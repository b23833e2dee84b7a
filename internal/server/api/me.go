package api

import (
	"errors"
	"net/http"

	"scrollforcause/platform/internal/auth"
	"scrollforcause/platform/internal/server/storage"
)

// MeResponse resolves the caller to their profile, if any.
type MeResponse struct {
	UserID             string  `json:"userId"`
	Role               string  `json:"role"`
	VolunteerID        *string `json:"volunteerId"`
	OrganizationID     *string `json:"organizationId"`
	DisplayName        *string `json:"displayName"`
	VerificationStatus *string `json:"verificationStatus"`
}

// MeHandler resolves caller identity to a platform profile.
type MeHandler struct {
	volunteers storage.VolunteerRepository
	orgs       storage.OrganizationRepository
}

// NewMeHandler creates a new handler instance.
func NewMeHandler(volunteers storage.VolunteerRepository, orgs storage.OrganizationRepository) *MeHandler {
	return &MeHandler{volunteers: volunteers, orgs: orgs}
}

// GetMe returns the caller's profile view. Role "none" means authenticated
// but not yet registered.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeErrorCode(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required.", nil)
		return
	}

	resp := MeResponse{UserID: identity.UserID, Role: "none"}

	volunteer, err := h.volunteers.GetByUserID(r.Context(), identity.UserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, err)
		return
	}
	if volunteer != nil {
		resp.Role = auth.RoleVolunteer
		resp.VolunteerID = &volunteer.ID
		resp.DisplayName = &volunteer.DisplayName
		writeJSON(w, r, http.StatusOK, resp)
		return
	}

	org, err := h.orgs.GetByUserID(r.Context(), identity.UserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, err)
		return
	}
	if org != nil {
		resp.Role = auth.RoleOrganization
		resp.OrganizationID = &org.ID
		resp.DisplayName = &org.Name
		resp.VerificationStatus = &org.VerificationStatus
	}

	writeJSON(w, r, http.StatusOK, resp)
}
