package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"scrollforcause/platform/internal/database"
	"scrollforcause/platform/internal/feed"
	"scrollforcause/platform/internal/models"
)

// VolunteerRepository defines operations for accessing volunteers.
type VolunteerRepository interface {
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	GetByUserID(ctx context.Context, userID string) (*models.Volunteer, error)
	Create(ctx context.Context, v *models.Volunteer, categoryIDs []string) error
}

type volunteerRepository struct {
	db *database.DB
}

// NewVolunteerRepository creates a new repository instance.
func NewVolunteerRepository(db *database.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM volunteers WHERE user_id = ?`, userID)
	if err != nil {
		return false, feed.NewDependencyError(fmt.Errorf("volunteer lookup failed: %w", err))
	}
	return count > 0, nil
}

func (r *volunteerRepository) GetByUserID(ctx context.Context, userID string) (*models.Volunteer, error) {
	var v models.Volunteer
	err := r.db.GetContext(ctx, &v,
		`SELECT * FROM volunteers WHERE user_id = ? AND is_active = 1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, feed.NewDependencyError(fmt.Errorf("volunteer query failed: %w", err))
	}
	return &v, nil
}

// Create inserts the volunteer and its category links in one transaction.
func (r *volunteerRepository) Create(ctx context.Context, v *models.Volunteer, categoryIDs []string) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO volunteers (id, user_id, email, display_name, city, state, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.UserID, v.Email, v.DisplayName, v.City, v.State, v.IsActive, v.CreatedAt, v.UpdatedAt)
		if err != nil {
			return feed.NewDependencyError(fmt.Errorf("volunteer insert failed: %w", err))
		}

		for _, categoryID := range categoryIDs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO volunteer_categories (volunteer_id, category_id)
				VALUES (?, ?)`, v.ID, categoryID)
			if err != nil {
				return feed.NewDependencyError(fmt.Errorf("volunteer category insert failed: %w", err))
			}
		}
		return nil
	})
}

func (r *volunteerRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return feed.NewDependencyError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
