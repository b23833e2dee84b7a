package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"scrollforcause/platform/internal/database"
	"scrollforcause/platform/internal/feed"
)

// DashboardStats aggregates engagement counters for one organization.
type DashboardStats struct {
	PendingInterestCount   int
	ActiveOpportunityCount int
	FollowerCount          int
}

// RecentInterest is one row of the dashboard's latest-interest list.
type RecentInterest struct {
	InterestID       string         `db:"interest_id"`
	VolunteerName    string         `db:"volunteer_name"`
	OpportunityTitle string         `db:"opportunity_title"`
	Status           string         `db:"status"`
	CreatedAt        time.Time      `db:"created_at"`
	Message          sql.NullString `db:"message"`
}

// RecentPost is one row of the dashboard's latest-post list.
type RecentPost struct {
	PostID       string         `db:"post_id"`
	Title        string         `db:"title"`
	ThumbnailURL sql.NullString `db:"thumbnail_url"`
	ViewCount    int            `db:"view_count"`
	CreatedAt    time.Time      `db:"created_at"`
}

// DashboardRepository serves the organization dashboard aggregates.
type DashboardRepository interface {
	Stats(ctx context.Context, orgID string) (DashboardStats, error)
	RecentInterests(ctx context.Context, orgID string, limit int) ([]RecentInterest, error)
	RecentPosts(ctx context.Context, orgID string, limit int) ([]RecentPost, error)
	HasOpportunity(ctx context.Context, orgID string) (bool, error)
}

type dashboardRepository struct {
	db *database.DB
}

// NewDashboardRepository creates a new repository instance.
func NewDashboardRepository(db *database.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) Stats(ctx context.Context, orgID string) (DashboardStats, error) {
	var stats DashboardStats

	err := r.db.GetContext(ctx, &stats.ActiveOpportunityCount,
		`SELECT COUNT(*) FROM opportunities WHERE organization_id = ? AND status = 'active'`, orgID)
	if err != nil {
		return stats, feed.NewDependencyError(fmt.Errorf("opportunity count failed: %w", err))
	}

	err = r.db.GetContext(ctx, &stats.PendingInterestCount, `
		SELECT COUNT(*)
		FROM volunteer_interests vi
		JOIN opportunities op ON op.id = vi.opportunity_id
		WHERE op.organization_id = ? AND op.status = 'active' AND vi.status = 'pending'`, orgID)
	if err != nil {
		return stats, feed.NewDependencyError(fmt.Errorf("interest count failed: %w", err))
	}

	err = r.db.GetContext(ctx, &stats.FollowerCount,
		`SELECT follower_count FROM organizations WHERE id = ?`, orgID)
	if err != nil {
		return stats, feed.NewDependencyError(fmt.Errorf("follower count failed: %w", err))
	}

	return stats, nil
}

func (r *dashboardRepository) RecentInterests(ctx context.Context, orgID string, limit int) ([]RecentInterest, error) {
	interests := []RecentInterest{}
	err := r.db.SelectContext(ctx, &interests, `
		SELECT vi.id AS interest_id, v.display_name AS volunteer_name,
		       op.title AS opportunity_title, vi.status, vi.created_at, vi.message
		FROM volunteer_interests vi
		JOIN volunteers v ON v.id = vi.volunteer_id
		JOIN opportunities op ON op.id = vi.opportunity_id
		WHERE op.organization_id = ?
		ORDER BY vi.created_at DESC
		LIMIT ?`, orgID, limit)
	if err != nil {
		return nil, feed.NewDependencyError(fmt.Errorf("recent interests query failed: %w", err))
	}
	return interests, nil
}

func (r *dashboardRepository) RecentPosts(ctx context.Context, orgID string, limit int) ([]RecentPost, error) {
	posts := []RecentPost{}
	err := r.db.SelectContext(ctx, &posts, `
		SELECT p.id AS post_id, p.title, p.view_count, p.created_at,
		       (SELECT pm.thumbnail_url FROM post_media pm
		        WHERE pm.post_id = p.id ORDER BY pm.display_order LIMIT 1) AS thumbnail_url
		FROM posts p
		WHERE p.organization_id = ?
		ORDER BY p.created_at DESC
		LIMIT ?`, orgID, limit)
	if err != nil {
		return nil, feed.NewDependencyError(fmt.Errorf("recent posts query failed: %w", err))
	}
	return posts, nil
}

func (r *dashboardRepository) HasOpportunity(ctx context.Context, orgID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM opportunities WHERE organization_id = ?`, orgID)
	if err != nil {
		return false, feed.NewDependencyError(fmt.Errorf("opportunity lookup failed: %w", err))
	}
	return count > 0, nil
}
