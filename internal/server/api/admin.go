package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"scrollforcause/platform/internal/feed"
	"scrollforcause/platform/internal/mailer"
	"scrollforcause/platform/internal/models"
	"scrollforcause/platform/internal/server/storage"
)

const (
	adminDefaultLimit = 25
	adminMaxLimit     = 100
)

// AdminOrganization is one row of the moderation listing.
type AdminOrganization struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	ContactEmail       string     `json:"contactEmail"`
	VerificationStatus string     `json:"verificationStatus"`
	VerifiedAt         *time.Time `json:"verifiedAt"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// AdminOrganizationList is the offset-paginated moderation listing.
type AdminOrganizationList struct {
	Data   []AdminOrganization `json:"data"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// AdminCategory is one category tag on the moderation detail view.
type AdminCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// AdminOrganizationDetail is the full moderation view of one organization,
// everything a reviewer needs to decide a verification request.
type AdminOrganizationDetail struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	EIN                string          `json:"ein"`
	Description        string          `json:"description"`
	ContactName        string          `json:"contactName"`
	ContactEmail       string          `json:"contactEmail"`
	WebsiteURL         *string         `json:"websiteUrl"`
	City               *string         `json:"city"`
	State              *string         `json:"state"`
	VerificationStatus string          `json:"verificationStatus"`
	VerifiedAt         *time.Time      `json:"verifiedAt"`
	CreatedAt          time.Time       `json:"createdAt"`
	LogoURL            *string         `json:"logoUrl"`
	CoverImageURL      *string         `json:"coverImageUrl"`
	Categories         []AdminCategory `json:"categories"`
}

// VerifyOrganizationRequest is the moderation decision payload.
type VerifyOrganizationRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason"`
}

// VerifyOrganizationResponse reflects the updated organization.
type VerifyOrganizationResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	VerificationStatus string     `json:"verificationStatus"`
	VerifiedAt         *time.Time `json:"verifiedAt"`
}

// AdminHandler serves the moderation endpoints.
type AdminHandler struct {
	orgs       storage.OrganizationRepository
	categories storage.CategoryRepository
	mailer     mailer.Mailer
}

// NewAdminHandler creates a new handler instance.
func NewAdminHandler(orgs storage.OrganizationRepository, categories storage.CategoryRepository, m mailer.Mailer) *AdminHandler {
	return &AdminHandler{orgs: orgs, categories: categories, mailer: m}
}

// ListOrganizations returns organizations for moderation review. Plain
// offset pagination; this listing never accepts feed cursors.
func (h *AdminHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	status := query.Get("status")
	if status != "" && status != models.VerificationPending &&
		status != models.VerificationVerified && status != models.VerificationRejected {
		writeError(w, r, feed.NewValidationError("status",
			"status must be one of: pending, verified, rejected"))
		return
	}

	limit := adminDefaultLimit
	if limitStr := query.Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > adminMaxLimit {
			writeError(w, r, feed.NewValidationError("limit",
				"limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	offset := 0
	if offsetStr := query.Get("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil || parsed < 0 {
			writeError(w, r, feed.NewValidationError("offset", "offset must be a non-negative integer"))
			return
		}
		offset = parsed
	}

	orgs, total, err := h.orgs.List(r.Context(), status, limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := AdminOrganizationList{
		Data:   make([]AdminOrganization, 0, len(orgs)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, org := range orgs {
		row := AdminOrganization{
			ID:                 org.ID,
			Name:               org.Name,
			ContactEmail:       org.ContactEmail,
			VerificationStatus: org.VerificationStatus,
			CreatedAt:          org.CreatedAt.UTC(),
		}
		if org.VerifiedAt.Valid {
			t := org.VerifiedAt.Time.UTC()
			row.VerifiedAt = &t
		}
		out.Data = append(out.Data, row)
	}

	writeJSON(w, r, http.StatusOK, out)
}

// GetOrganization returns the full moderation view of one organization.
func (h *AdminHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(orgID); err != nil {
		writeError(w, r, feed.NewValidationError("id", "id must be a valid organization id"))
		return
	}

	org, err := h.orgs.GetByID(r.Context(), orgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorCode(w, r, http.StatusNotFound, "ORGANIZATION_NOT_FOUND", "Organization not found.", nil)
			return
		}
		writeError(w, r, err)
		return
	}

	categories, err := h.categories.ListForOrganization(r.Context(), org.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	detail := AdminOrganizationDetail{
		ID:                 org.ID,
		Name:               org.Name,
		EIN:                org.EIN,
		Description:        org.Description,
		ContactName:        org.ContactName,
		ContactEmail:       org.ContactEmail,
		WebsiteURL:         optional(org.WebsiteURL),
		City:               optional(org.City),
		State:              optional(org.State),
		VerificationStatus: org.VerificationStatus,
		CreatedAt:          org.CreatedAt.UTC(),
		LogoURL:            optional(org.LogoURL),
		CoverImageURL:      optional(org.CoverImageURL),
		Categories:         make([]AdminCategory, 0, len(categories)),
	}
	if org.VerifiedAt.Valid {
		t := org.VerifiedAt.Time.UTC()
		detail.VerifiedAt = &t
	}
	for _, c := range categories {
		detail.Categories = append(detail.Categories, AdminCategory{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}

	writeJSON(w, r, http.StatusOK, detail)
}

// optional converts a nullable column into a JSON-friendly pointer.
func optional(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// VerifyOrganization records a moderation decision and notifies the
// organization after the write succeeds.
func (h *AdminHandler) VerifyOrganization(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	orgID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(orgID); err != nil {
		writeError(w, r, feed.NewValidationError("id", "id must be a valid organization id"))
		return
	}

	var req VerifyOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, feed.NewValidationError("body", "request body must be valid JSON"))
		return
	}
	if req.Status != models.VerificationVerified && req.Status != models.VerificationRejected {
		writeError(w, r, feed.NewValidationError("status", "status must be 'verified' or 'rejected'"))
		return
	}
	if req.Status == models.VerificationRejected && (req.Reason == nil || *req.Reason == "") {
		writeError(w, r, feed.NewValidationError("reason", "reason is required when rejecting an organization"))
		return
	}

	org, err := h.orgs.GetByID(r.Context(), orgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorCode(w, r, http.StatusNotFound, "ORGANIZATION_NOT_FOUND", "Organization not found.", nil)
			return
		}
		writeError(w, r, err)
		return
	}

	var verifiedAt *time.Time
	if req.Status == models.VerificationVerified {
		now := time.Now().UTC()
		verifiedAt = &now
	}

	if err := h.orgs.SetVerification(r.Context(), org.ID, req.Status, verifiedAt); err != nil {
		writeError(w, r, err)
		return
	}

	// Notify only after the write has committed.
	var mailErr error
	if req.Status == models.VerificationVerified {
		mailErr = h.mailer.SendVerificationApproved(org.ContactEmail, org.Name)
	} else {
		mailErr = h.mailer.SendVerificationRejected(org.ContactEmail, org.Name, *req.Reason)
	}
	if mailErr != nil {
		log.Error().Err(mailErr).Str("organization_id", org.ID).Msg("Failed to send verification notification")
	}

	log.Info().
		Str("organization_id", org.ID).
		Str("status", req.Status).
		Msg("Organization verification updated")

	writeJSON(w, r, http.StatusOK, VerifyOrganizationResponse{
		ID:                 org.ID,
		Name:               org.Name,
		VerificationStatus: req.Status,
		VerifiedAt:         verifiedAt,
	})
}
