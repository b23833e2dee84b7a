package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollforcause/platform/internal/auth"
	"scrollforcause/platform/internal/database"
	"scrollforcause/platform/internal/feed"
	"scrollforcause/platform/internal/models"
)

func newTestRouter(t *testing.T) (http.Handler, *database.DB) {
	t.Helper()

	db, err := database.NewDB(database.NewConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRouter(db, zerolog.Nop(), 10), db
}

func seedOrg(t *testing.T, db *database.DB, name, status string) *models.Organization {
	t.Helper()

	org := models.NewOrganization("user_"+name, name)
	org.VerificationStatus = status
	org.ContactEmail = "contact@" + name + ".org"

	_, err := db.Exec(`
		INSERT INTO organizations (id, user_id, name, contact_email, verification_status, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		org.ID, org.UserID, org.Name, org.ContactEmail, org.VerificationStatus, org.CreatedAt, org.UpdatedAt)
	require.NoError(t, err)
	return org
}

func seedPost(t *testing.T, db *database.DB, orgID, title string, createdAt time.Time) *models.Post {
	t.Helper()

	post := models.NewPost(orgID)
	post.Title = title
	post.MediaType = "video"
	post.CreatedAt = createdAt
	post.UpdatedAt = createdAt

	_, err := db.Exec(`
		INSERT INTO posts (id, organization_id, title, media_type, status, view_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		post.ID, post.OrganizationID, post.Title, post.MediaType, post.Status, post.CreatedAt, post.UpdatedAt)
	require.NoError(t, err)
	return post
}

func doJSON(router http.Handler, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, target, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func asVolunteer(userID string) map[string]string {
	return map[string]string{auth.HeaderUserID: userID, auth.HeaderRole: auth.RoleVolunteer}
}

func asAdmin(userID string) map[string]string {
	return map[string]string{auth.HeaderUserID: userID, auth.HeaderRole: auth.RoleAdmin}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestFeedPaginationEndToEnd(t *testing.T) {
	router, db := newTestRouter(t)

	org := seedOrg(t, db, "oceanguardians", models.VerificationVerified)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var postIDs []string
	for i := 0; i < 5; i++ {
		p := seedPost(t, db, org.ID, "post", base.Add(-time.Duration(i)*time.Minute))
		postIDs = append(postIDs, p.ID)
	}

	type page struct {
		Data    []feed.Entry `json:"data"`
		Cursor  *string      `json:"cursor"`
		HasMore bool         `json:"hasMore"`
	}

	var seen []string
	target := "/api/v1/feed?limit=2"
	for {
		rec := doJSON(router, http.MethodGet, target, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var p page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		for _, e := range p.Data {
			seen = append(seen, e.PostID)
		}
		if !p.HasMore {
			assert.Nil(t, p.Cursor)
			break
		}
		require.NotNil(t, p.Cursor)
		target = "/api/v1/feed?limit=2&cursor=" + url.QueryEscape(*p.Cursor)
	}

	assert.Equal(t, postIDs, seen, "pagination must cover the feed exactly once, newest first")
}

func TestFeedValidationErrorEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/v1/feed?limit=50", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	require.Len(t, body.Error.Details, 1)
	assert.Equal(t, "limit", body.Error.Details[0].Field)
}

func TestAuthGates(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name    string
		method  string
		target  string
		headers map[string]string
		want    int
	}{
		{"me without identity", http.MethodGet, "/api/v1/me", nil, http.StatusUnauthorized},
		{"volunteers without identity", http.MethodPost, "/api/v1/volunteers", nil, http.StatusUnauthorized},
		{"dashboard as volunteer", http.MethodGet, "/api/v1/organizations/dashboard", asVolunteer("u1"), http.StatusForbidden},
		{"admin list as volunteer", http.MethodGet, "/api/v1/admin/organizations", asVolunteer("u1"), http.StatusForbidden},
		{"admin list without identity", http.MethodGet, "/api/v1/admin/organizations", nil, http.StatusUnauthorized},
		{"feed without identity", http.MethodGet, "/api/v1/feed", nil, http.StatusOK},
		{"categories without identity", http.MethodGet, "/api/v1/categories", nil, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(router, tc.method, tc.target, nil, tc.headers)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestVolunteerRegistration(t *testing.T) {
	router, _ := newTestRouter(t)

	body := map[string]any{
		"displayName": "Jordan Rivers",
		"city":        "Seattle",
		"state":       "WA",
		"categoryIds": []string{"a1b2c3d4-0001-4000-8000-000000000001"},
	}

	rec := doJSON(router, http.MethodPost, "/api/v1/volunteers", body, asVolunteer("user_jordan"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		VolunteerID string `json:"volunteerId"`
		DisplayName string `json:"displayName"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.VolunteerID)
	assert.Equal(t, "Jordan Rivers", created.DisplayName)

	// Registering the same user twice is a conflict.
	rec = doJSON(router, http.MethodPost, "/api/v1/volunteers", body, asVolunteer("user_jordan"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "DUPLICATE_VOLUNTEER")
}

func TestVolunteerRegistrationRejectsUnknownCategory(t *testing.T) {
	router, _ := newTestRouter(t)

	body := map[string]any{
		"displayName": "Jordan Rivers",
		"city":        "Seattle",
		"state":       "WA",
		"categoryIds": []string{"ffffffff-0000-4000-8000-000000000000"},
	}

	rec := doJSON(router, http.MethodPost, "/api/v1/volunteers", body, asVolunteer("user_jordan"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CATEGORY")
}

func TestCategoriesList(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/v1/categories", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []struct {
		CategoryID string `json:"categoryId"`
		Name       string `json:"name"`
		Slug       string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 10)
	assert.Equal(t, "environment", body[0].Slug)
}

// A pending organization's posts must stay out of the feed until an admin
// verifies it, and appear on the next page request afterwards with no other
// change to the posts themselves.
func TestVerificationFlipsFeedVisibility(t *testing.T) {
	router, db := newTestRouter(t)

	org := seedOrg(t, db, "riverrevival", models.VerificationPending)
	seedPost(t, db, org.ID, "riverbank cleanup", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	rec := doJSON(router, http.MethodGet, "/api/v1/feed", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)

	verify := map[string]any{"status": "verified"}
	rec = doJSON(router, http.MethodPut, "/api/v1/admin/organizations/"+org.ID+"/verify", verify, asAdmin("admin_1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/feed", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "riverbank cleanup")
}

func TestAdminOrganizationDetail(t *testing.T) {
	router, db := newTestRouter(t)

	org := seedOrg(t, db, "detailorg", models.VerificationPending)
	_, err := db.Exec(`
		UPDATE organizations SET ein = '98-7654321', description = 'Community tutoring.',
			contact_name = 'Dana Reed', website_url = 'https://detailorg.org', city = 'Austin', state = 'TX'
		WHERE id = ?`, org.ID)
	require.NoError(t, err)

	// Tag the org with two seeded categories, out of display order.
	for _, categoryID := range []string{
		"a1b2c3d4-0002-4000-8000-000000000002",
		"a1b2c3d4-0001-4000-8000-000000000001",
	} {
		_, err := db.Exec(`INSERT INTO organization_categories (organization_id, category_id) VALUES (?, ?)`,
			org.ID, categoryID)
		require.NoError(t, err)
	}

	rec := doJSON(router, http.MethodGet, "/api/v1/admin/organizations/"+org.ID, nil, asAdmin("admin_1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		ID                 string  `json:"id"`
		Name               string  `json:"name"`
		EIN                string  `json:"ein"`
		ContactName        string  `json:"contactName"`
		ContactEmail       string  `json:"contactEmail"`
		WebsiteURL         *string `json:"websiteUrl"`
		City               *string `json:"city"`
		State              *string `json:"state"`
		VerificationStatus string  `json:"verificationStatus"`
		VerifiedAt         *string `json:"verifiedAt"`
		LogoURL            *string `json:"logoUrl"`
		Categories         []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, org.ID, detail.ID)
	assert.Equal(t, "98-7654321", detail.EIN)
	assert.Equal(t, "Dana Reed", detail.ContactName)
	assert.Equal(t, org.ContactEmail, detail.ContactEmail)
	require.NotNil(t, detail.WebsiteURL)
	assert.Equal(t, "https://detailorg.org", *detail.WebsiteURL)
	require.NotNil(t, detail.City)
	assert.Equal(t, "Austin", *detail.City)
	assert.Equal(t, models.VerificationPending, detail.VerificationStatus)
	assert.Nil(t, detail.VerifiedAt)
	assert.Nil(t, detail.LogoURL)

	require.Len(t, detail.Categories, 2)
	assert.Equal(t, "environment", detail.Categories[0].Slug)
	assert.Equal(t, "education", detail.Categories[1].Slug)
}

func TestAdminOrganizationDetailNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/v1/admin/organizations/"+uuid.NewString(), nil, asAdmin("admin_1"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORGANIZATION_NOT_FOUND")

	rec = doJSON(router, http.MethodGet, "/api/v1/admin/organizations/not-a-uuid", nil, asAdmin("admin_1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedDropsOrgUnverifiedBetweenPages(t *testing.T) {
	router, db := newTestRouter(t)

	flipped := seedOrg(t, db, "flippedorg", models.VerificationVerified)
	stable := seedOrg(t, db, "stableorg", models.VerificationVerified)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, db, flipped.ID, "Old flipped post", base.Add(1*time.Hour))
	stableOld := seedPost(t, db, stable.ID, "Old stable post", base.Add(2*time.Hour))
	flippedNew := seedPost(t, db, flipped.ID, "New flipped post", base.Add(3*time.Hour))
	stableNew := seedPost(t, db, stable.ID, "New stable post", base.Add(4*time.Hour))

	rec := doJSON(router, http.MethodGet, "/api/v1/feed?limit=2", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	type page struct {
		Data    []feed.Entry `json:"data"`
		Cursor  *string      `json:"cursor"`
		HasMore bool         `json:"hasMore"`
	}

	var page1 page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page1))
	require.Len(t, page1.Data, 2)
	assert.Equal(t, stableNew.ID, page1.Data[0].PostID)
	assert.Equal(t, flippedNew.ID, page1.Data[1].PostID)
	require.True(t, page1.HasMore)
	require.NotNil(t, page1.Cursor)

	// The org loses verification between page fetches. The minted cursor
	// stays valid; eligibility is re-evaluated on the resumed page.
	_, err := db.Exec(`UPDATE organizations SET verification_status = ? WHERE id = ?`,
		models.VerificationPending, flipped.ID)
	require.NoError(t, err)

	rec = doJSON(router, http.MethodGet, "/api/v1/feed?limit=2&cursor="+url.QueryEscape(*page1.Cursor), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page2 page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page2))
	require.Len(t, page2.Data, 1)
	assert.Equal(t, stableOld.ID, page2.Data[0].PostID)
	assert.False(t, page2.HasMore)
}

func TestDashboardLimitedUntilVerified(t *testing.T) {
	router, db := newTestRouter(t)
	org := seedOrg(t, db, "pendingdash", models.VerificationPending)

	headers := map[string]string{auth.HeaderUserID: org.UserID, auth.HeaderRole: auth.RoleOrganization}
	rec := doJSON(router, http.MethodGet, "/api/v1/organizations/dashboard", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		VerificationStatus string          `json:"verificationStatus"`
		Stats              json.RawMessage `json:"stats"`
		SetupChecklist     json.RawMessage `json:"setupChecklist"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.VerificationPending, body.VerificationStatus)
	assert.Equal(t, "null", string(body.Stats), "unverified orgs get no stats")
	assert.Equal(t, "null", string(body.SetupChecklist))

	// Verify the org and the full dashboard appears.
	verify := map[string]any{"status": "verified"}
	rec = doJSON(router, http.MethodPut, "/api/v1/admin/organizations/"+org.ID+"/verify", verify, asAdmin("admin_1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/organizations/dashboard", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEqual(t, "null", string(body.Stats))
	assert.NotEqual(t, "null", string(body.SetupChecklist))
}

func TestCreateOpportunityRequiresVerifiedOrg(t *testing.T) {
	router, db := newTestRouter(t)

	pending := seedOrg(t, db, "pendingopp", models.VerificationPending)
	verified := seedOrg(t, db, "verifiedopp", models.VerificationVerified)

	body := map[string]any{
		"title":        "Saturday Beach Cleanup",
		"description":  "Join us every Saturday morning.",
		"scheduleType": "recurring",
	}

	headers := map[string]string{auth.HeaderUserID: pending.UserID, auth.HeaderRole: auth.RoleOrganization}
	rec := doJSON(router, http.MethodPost, "/api/v1/opportunities", body, headers)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORG_NOT_VERIFIED")

	headers[auth.HeaderUserID] = verified.UserID
	rec = doJSON(router, http.MethodPost, "/api/v1/opportunities", body, headers)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		OpportunityID string `json:"opportunityId"`
		Status        string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.OpportunityID)
	assert.Equal(t, "active", created.Status)
}

func TestCreateOpportunityOneTimeRequiresStartDate(t *testing.T) {
	router, db := newTestRouter(t)
	org := seedOrg(t, db, "onetimeorg", models.VerificationVerified)

	body := map[string]any{
		"title":        "Laptop Refurbishment Day",
		"description":  "Help configure donated laptops.",
		"scheduleType": "one_time",
	}

	headers := map[string]string{auth.HeaderUserID: org.UserID, auth.HeaderRole: auth.RoleOrganization}
	rec := doJSON(router, http.MethodPost, "/api/v1/opportunities", body, headers)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "startDate")
}

func TestVerifyOrganizationValidation(t *testing.T) {
	router, db := newTestRouter(t)
	org := seedOrg(t, db, "pendingorg", models.VerificationPending)

	tests := []struct {
		name   string
		target string
		body   map[string]any
		want   int
	}{
		{"bad id", "/api/v1/admin/organizations/not-a-uuid/verify", map[string]any{"status": "verified"}, http.StatusBadRequest},
		{"unknown org", "/api/v1/admin/organizations/b64b1f54-9be1-4d23-8e6b-111111111111/verify", map[string]any{"status": "verified"}, http.StatusNotFound},
		{"bad status", "/api/v1/admin/organizations/" + org.ID + "/verify", map[string]any{"status": "maybe"}, http.StatusBadRequest},
		{"reject without reason", "/api/v1/admin/organizations/" + org.ID + "/verify", map[string]any{"status": "rejected"}, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(router, http.MethodPut, tc.target, tc.body, asAdmin("admin_1"))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
