package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"scrollforcause/platform/internal/database"
	"scrollforcause/platform/internal/feed"
	"scrollforcause/platform/internal/models"
)

// feedRepository implements feed.Repository using sqlx.
type feedRepository struct {
	db *database.DB
}

// NewFeedRepository creates a repository serving eligible feed entries.
func NewFeedRepository(db *database.DB) feed.Repository {
	return &feedRepository{db: db}
}

// feedRow is the flattened projection of a post joined with its owning
// organization and optional opportunity.
type feedRow struct {
	PostID      string         `db:"post_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	MediaType   string         `db:"media_type"`
	CreatedAt   time.Time      `db:"created_at"`

	OrgID      string         `db:"org_id"`
	OrgName    string         `db:"org_name"`
	OrgLogoURL sql.NullString `db:"org_logo_url"`
	OrgStatus  string         `db:"org_status"`

	OppID             sql.NullString `db:"opp_id"`
	OppTitle          sql.NullString `db:"opp_title"`
	OppScheduleType   sql.NullString `db:"opp_schedule_type"`
	OppStartDate      sql.NullTime   `db:"opp_start_date"`
	OppLocation       sql.NullString `db:"opp_location"`
	OppIsRemote       sql.NullBool   `db:"opp_is_remote"`
	OppTimeCommitment sql.NullString `db:"opp_time_commitment"`
}

// FetchEligible retrieves eligible feed entries strictly before the cursor
// position, newest first, with id as the tie-break.
func (r *feedRepository) FetchEligible(ctx context.Context, before *feed.Cursor, limit int) ([]feed.Entry, error) {
	// Eligibility is evaluated at query time, never cached on the post:
	// an organization losing verification drops its posts from the next
	// page without touching the posts table.
	query := `
		SELECT p.id AS post_id, p.title, p.description, p.media_type, p.created_at,
		       o.id AS org_id, o.name AS org_name, o.logo_url AS org_logo_url,
		       o.verification_status AS org_status,
		       op.id AS opp_id, op.title AS opp_title, op.schedule_type AS opp_schedule_type,
		       op.start_date AS opp_start_date, op.location_address AS opp_location,
		       op.is_remote AS opp_is_remote, op.time_commitment AS opp_time_commitment
		FROM posts p
		JOIN organizations o ON o.id = p.organization_id
		LEFT JOIN opportunities op ON op.id = p.opportunity_id
		WHERE p.status = ? AND o.is_active = 1 AND o.verification_status = ?`
	args := []any{models.PostStatusPublished, models.VerificationVerified}

	if before != nil {
		query += ` AND (p.created_at < ? OR (p.created_at = ? AND p.id < ?))`
		args = append(args, before.CreatedAt.UTC(), before.CreatedAt.UTC(), before.ID)
	}

	// The ORDER BY must match the cursor predicate exactly or pages drift.
	query += ` ORDER BY p.created_at DESC, p.id DESC LIMIT ?`
	args = append(args, limit)

	var rows []feedRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []feed.Entry{}, nil
		}
		return nil, feed.NewDependencyError(fmt.Errorf("feed query failed: %w", err))
	}

	if len(rows) == 0 {
		return []feed.Entry{}, nil
	}

	mediaByPost, err := r.fetchMedia(ctx, rows)
	if err != nil {
		return nil, err
	}

	entries := make([]feed.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row, mediaByPost[row.PostID]))
	}
	return entries, nil
}

// fetchMedia loads attachments for a page of posts in one query, keyed by
// post id and already sorted by display order.
func (r *feedRepository) fetchMedia(ctx context.Context, rows []feedRow) (map[string][]feed.Media, error) {
	postIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		postIDs = append(postIDs, row.PostID)
	}

	query, args, err := sqlx.In(`
		SELECT id, post_id, media_url, thumbnail_url, duration_seconds, width, height, display_order, created_at
		FROM post_media
		WHERE post_id IN (?)
		ORDER BY post_id, display_order`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build media query: %w", err)
	}

	var media []models.PostMedia
	if err := r.db.SelectContext(ctx, &media, r.db.Rebind(query), args...); err != nil {
		return nil, feed.NewDependencyError(fmt.Errorf("media query failed: %w", err))
	}

	byPost := make(map[string][]feed.Media, len(rows))
	for _, m := range media {
		byPost[m.PostID] = append(byPost[m.PostID], feed.Media{
			ID:           m.ID,
			URL:          m.MediaURL,
			ThumbnailURL: nullString(m.ThumbnailURL),
			Duration:     nullInt(m.DurationSeconds),
			Width:        nullInt(m.Width),
			Height:       nullInt(m.Height),
		})
	}
	return byPost, nil
}

func rowToEntry(row feedRow, media []feed.Media) feed.Entry {
	if media == nil {
		media = []feed.Media{}
	}

	entry := feed.Entry{
		PostID:      row.PostID,
		Title:       row.Title,
		Description: nullString(row.Description),
		MediaType:   row.MediaType,
		CreatedAt:   row.CreatedAt.UTC(),
		Media:       media,
		Organization: feed.Organization{
			ID:         row.OrgID,
			Name:       row.OrgName,
			LogoURL:    nullString(row.OrgLogoURL),
			IsVerified: row.OrgStatus == models.VerificationVerified,
		},
	}

	if row.OppID.Valid {
		opp := &feed.Opportunity{
			ID:             row.OppID.String,
			Title:          row.OppTitle.String,
			ScheduleType:   row.OppScheduleType.String,
			Location:       nullString(row.OppLocation),
			TimeCommitment: nullString(row.OppTimeCommitment),
		}
		if row.OppIsRemote.Valid {
			opp.IsRemote = row.OppIsRemote.Bool
		}
		if row.OppStartDate.Valid {
			t := row.OppStartDate.Time.UTC()
			opp.StartDate = &t
		}
		entry.Opportunity = opp
	}

	return entry
}

func nullString(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

func nullInt(ni sql.NullInt64) *int {
	if ni.Valid {
		v := int(ni.Int64)
		return &v
	}
	return nil
}
