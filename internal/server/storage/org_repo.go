package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scrollforcause/platform/internal/database"
	"scrollforcause/platform/internal/feed"
	"scrollforcause/platform/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// OrganizationRepository defines operations for accessing organizations.
type OrganizationRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Organization, error)
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	List(ctx context.Context, status string, limit, offset int) ([]models.Organization, int, error)
	SetVerification(ctx context.Context, id, status string, verifiedAt *time.Time) error
}

type orgRepository struct {
	db *database.DB
}

// NewOrganizationRepository creates a new repository instance.
func NewOrganizationRepository(db *database.DB) OrganizationRepository {
	return &orgRepository{db: db}
}

func (r *orgRepository) GetByUserID(ctx context.Context, userID string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.GetContext(ctx, &org,
		`SELECT * FROM organizations WHERE user_id = ? AND is_active = 1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, feed.NewDependencyError(fmt.Errorf("organization query failed: %w", err))
	}
	return &org, nil
}

func (r *orgRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.GetContext(ctx, &org,
		`SELECT * FROM organizations WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, feed.NewDependencyError(fmt.Errorf("organization query failed: %w", err))
	}
	return &org, nil
}

// List returns active organizations for the admin listing, newest first,
// with classic offset pagination. Feed cursors are deliberately not accepted
// here; the two schemes must never mix.
func (r *orgRepository) List(ctx context.Context, status string, limit, offset int) ([]models.Organization, int, error) {
	query := `SELECT * FROM organizations WHERE is_active = 1`
	countQuery := `SELECT COUNT(*) FROM organizations WHERE is_active = 1`
	var args, countArgs []any

	if status != "" {
		query += ` AND verification_status = ?`
		countQuery += ` AND verification_status = ?`
		args = append(args, status)
		countArgs = append(countArgs, status)
	}

	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, feed.NewDependencyError(fmt.Errorf("organization count failed: %w", err))
	}

	orgs := []models.Organization{}
	if err := r.db.SelectContext(ctx, &orgs, query, args...); err != nil {
		return nil, 0, feed.NewDependencyError(fmt.Errorf("organization list failed: %w", err))
	}
	return orgs, total, nil
}

func (r *orgRepository) SetVerification(ctx context.Context, id, status string, verifiedAt *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE organizations SET verification_status = ?, verified_at = ?, updated_at = ? WHERE id = ?`,
		status, verifiedAt, time.Now().UTC(), id)
	if err != nil {
		return feed.NewDependencyError(fmt.Errorf("organization update failed: %w", err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
