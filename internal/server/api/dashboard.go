package api

import (
	"errors"
	"net/http"
	"time"

	"scrollforcause/platform/internal/auth"
	"scrollforcause/platform/internal/models"
	"scrollforcause/platform/internal/server/storage"
)

const (
	recentInterestLimit = 5
	recentPostLimit     = 3
)

// DashboardStats is the engagement counter block of the dashboard.
type DashboardStats struct {
	NewInterestCount       int `json:"newInterestCount"`
	ActiveOpportunityCount int `json:"activeOpportunityCount"`
	FollowerCount          int `json:"followerCount"`
}

// InterestSummary is one recent volunteer interest.
type InterestSummary struct {
	InterestID       string    `json:"interestId"`
	VolunteerName    string    `json:"volunteerName"`
	OpportunityTitle string    `json:"opportunityTitle"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// PostSummary is one recent post.
type PostSummary struct {
	PostID       string    `json:"postId"`
	Title        string    `json:"title"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	ViewCount    int       `json:"viewCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SetupChecklist flags onboarding steps an organization still has open.
type SetupChecklist struct {
	HasCoverImage  bool `json:"hasCoverImage"`
	HasOpportunity bool `json:"hasOpportunity"`
	HasPost        bool `json:"hasPost"`
}

// DashboardResponse is the organization dashboard payload. Unverified
// organizations receive only identity and status.
type DashboardResponse struct {
	OrganizationID     string            `json:"organizationId"`
	OrganizationName   string            `json:"organizationName"`
	VerificationStatus string            `json:"verificationStatus"`
	Stats              *DashboardStats   `json:"stats"`
	RecentInterests    []InterestSummary `json:"recentInterests"`
	RecentPosts        []PostSummary     `json:"recentPosts"`
	SetupChecklist     *SetupChecklist   `json:"setupChecklist"`
}

// DashboardHandler serves the organization dashboard.
type DashboardHandler struct {
	orgs      storage.OrganizationRepository
	dashboard storage.DashboardRepository
}

// NewDashboardHandler creates a new handler instance.
func NewDashboardHandler(orgs storage.OrganizationRepository, dashboard storage.DashboardRepository) *DashboardHandler {
	return &DashboardHandler{orgs: orgs, dashboard: dashboard}
}

// GetDashboard returns engagement stats and recent activity for the
// caller's organization.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	org, err := h.orgs.GetByUserID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorCode(w, r, http.StatusNotFound, "ORGANIZATION_NOT_FOUND",
				"No organization profile found for this user.", nil)
			return
		}
		writeError(w, r, err)
		return
	}

	resp := DashboardResponse{
		OrganizationID:     org.ID,
		OrganizationName:   org.Name,
		VerificationStatus: org.VerificationStatus,
		RecentInterests:    []InterestSummary{},
		RecentPosts:        []PostSummary{},
	}

	if org.VerificationStatus != models.VerificationVerified {
		writeJSON(w, r, http.StatusOK, resp)
		return
	}

	stats, err := h.dashboard.Stats(r.Context(), org.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.Stats = &DashboardStats{
		NewInterestCount:       stats.PendingInterestCount,
		ActiveOpportunityCount: stats.ActiveOpportunityCount,
		FollowerCount:          stats.FollowerCount,
	}

	interests, err := h.dashboard.RecentInterests(r.Context(), org.ID, recentInterestLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	for _, in := range interests {
		resp.RecentInterests = append(resp.RecentInterests, InterestSummary{
			InterestID:       in.InterestID,
			VolunteerName:    in.VolunteerName,
			OpportunityTitle: in.OpportunityTitle,
			Status:           in.Status,
			CreatedAt:        in.CreatedAt.UTC(),
		})
	}

	posts, err := h.dashboard.RecentPosts(r.Context(), org.ID, recentPostLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	for _, p := range posts {
		summary := PostSummary{
			PostID:    p.PostID,
			Title:     p.Title,
			ViewCount: p.ViewCount,
			CreatedAt: p.CreatedAt.UTC(),
		}
		if p.ThumbnailURL.Valid {
			thumb := p.ThumbnailURL.String
			summary.ThumbnailURL = &thumb
		}
		resp.RecentPosts = append(resp.RecentPosts, summary)
	}

	hasOpportunity, err := h.dashboard.HasOpportunity(r.Context(), org.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SetupChecklist = &SetupChecklist{
		HasCoverImage:  org.CoverImageURL.Valid && org.CoverImageURL.String != "",
		HasOpportunity: hasOpportunity,
		HasPost:        len(resp.RecentPosts) > 0,
	}

	writeJSON(w, r, http.StatusOK, resp)
}
