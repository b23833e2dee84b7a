package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"scrollforcause/platform/internal/database"
	"scrollforcause/platform/internal/feed"
	"scrollforcause/platform/internal/models"
)

// CategoryRepository defines operations for accessing categories.
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	ListForOrganization(ctx context.Context, orgID string) ([]models.Category, error)
	CountActiveIn(ctx context.Context, ids []string) (int, error)
}

type categoryRepository struct {
	db *database.DB
}

// NewCategoryRepository creates a new repository instance.
func NewCategoryRepository(db *database.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.db.SelectContext(ctx, &categories,
		`SELECT * FROM categories WHERE is_active = 1 ORDER BY display_order`)
	if err != nil {
		return nil, feed.NewDependencyError(fmt.Errorf("category query failed: %w", err))
	}
	return categories, nil
}

// ListForOrganization returns the categories an organization has tagged
// itself with, in display order.
func (r *categoryRepository) ListForOrganization(ctx context.Context, orgID string) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.db.SelectContext(ctx, &categories, `
		SELECT c.* FROM categories c
		JOIN organization_categories oc ON oc.category_id = c.id
		WHERE oc.organization_id = ?
		ORDER BY c.display_order`, orgID)
	if err != nil {
		return nil, feed.NewDependencyError(fmt.Errorf("organization category query failed: %w", err))
	}
	return categories, nil
}

// CountActiveIn reports how many of the given ids name an active category.
func (r *categoryRepository) CountActiveIn(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(
		`SELECT COUNT(*) FROM categories WHERE is_active = 1 AND id IN (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build category query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, feed.NewDependencyError(fmt.Errorf("category count failed: %w", err))
	}
	return count, nil
}

// OpportunityRepository defines operations for accessing opportunities.
type OpportunityRepository interface {
	Create(ctx context.Context, o *models.Opportunity) error
}

type opportunityRepository struct {
	db *database.DB
}

// NewOpportunityRepository creates a new repository instance.
func NewOpportunityRepository(db *database.DB) OpportunityRepository {
	return &opportunityRepository{db: db}
}

func (r *opportunityRepository) Create(ctx context.Context, o *models.Opportunity) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO opportunities (
			id, organization_id, title, description, location_address, is_remote,
			schedule_type, start_date, end_date, recurrence_desc, volunteers_needed,
			time_commitment, skills_required, minimum_age, status, interest_count,
			created_at, updated_at
		) VALUES (
			:id, :organization_id, :title, :description, :location_address, :is_remote,
			:schedule_type, :start_date, :end_date, :recurrence_desc, :volunteers_needed,
			:time_commitment, :skills_required, :minimum_age, :status, :interest_count,
			:created_at, :updated_at
		)`, o)
	if err != nil {
		return feed.NewDependencyError(fmt.Errorf("opportunity insert failed: %w", err))
	}
	return nil
}
