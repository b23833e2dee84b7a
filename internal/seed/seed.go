// Package seed populates a database with demo organizations, opportunities,
// and posts so the feed has realistic content to scroll through during
// development.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"scrollforcause/platform/internal/database"
	"scrollforcause/platform/internal/models"
)

// seedUserPrefix marks identity subjects owned by the seeder. Its presence
// in the organizations table means the database was already seeded.
const seedUserPrefix = "seed_"

// Seeder inserts demo data into the platform database.
type Seeder struct {
	db *database.DB
}

// NewSeeder creates a new demo data seeder.
func NewSeeder(db *database.DB) *Seeder {
	return &Seeder{db: db}
}

type orgSpec struct {
	userID      string
	name        string
	ein         string
	description string
	contact     string
	email       string
	website     string
	city        string
	state       string
	status      string
	active      bool
	categories  []string // category slugs
	opps        []oppSpec
	posts       []postSpec
}

type oppSpec struct {
	title       string
	description string
	schedule    string
	recurrence  string
	commitment  string
	location    string
	remote      bool
	needed      int64
	startInDays int
}

type postSpec struct {
	title       string
	description string
	ageDays     int
	oppIndex    int // -1 for standalone posts
}

// Run seeds the database. It is idempotent: a second invocation against the
// same database is a no-op.
func (s *Seeder) Run(ctx context.Context) error {
	var existing int
	err := s.db.GetContext(ctx, &existing,
		`SELECT COUNT(*) FROM organizations WHERE user_id LIKE ?`, seedUserPrefix+"%")
	if err != nil {
		return fmt.Errorf("failed to check for existing seed data: %w", err)
	}
	if existing > 0 {
		log.Info().Int("organizations", existing).Msg("Seed data already present, skipping")
		return nil
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var orgCount, oppCount, postCount int
	for _, spec := range demoOrgs() {
		org := models.NewOrganization(seedUserPrefix+spec.userID, spec.name)
		org.EIN = spec.ein
		org.Description = spec.description
		org.ContactName = spec.contact
		org.ContactEmail = spec.email
		org.WebsiteURL = nullable(spec.website)
		org.City = nullable(spec.city)
		org.State = nullable(spec.state)
		org.VerificationStatus = spec.status
		org.IsActive = spec.active
		org.CreatedAt = now.AddDate(0, 0, -90)
		org.UpdatedAt = now.AddDate(0, 0, -30)
		if spec.status == models.VerificationVerified {
			org.VerifiedAt.Time = now.AddDate(0, 0, -30)
			org.VerifiedAt.Valid = true
		}

		if _, err := tx.NamedExecContext(ctx, insertOrgSQL, org); err != nil {
			return fmt.Errorf("failed to insert organization %q: %w", spec.name, err)
		}
		orgCount++

		for _, slug := range spec.categories {
			var categoryID string
			if err := tx.GetContext(ctx, &categoryID,
				`SELECT id FROM categories WHERE slug = ?`, slug); err != nil {
				return fmt.Errorf("failed to resolve category %q: %w", slug, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO organization_categories (organization_id, category_id) VALUES (?, ?)`,
				org.ID, categoryID); err != nil {
				return fmt.Errorf("failed to tag organization %q with %q: %w", spec.name, slug, err)
			}
		}

		oppIDs := make([]string, len(spec.opps))
		for i, o := range spec.opps {
			opp := models.NewOpportunity(org.ID, o.title)
			opp.Description = o.description
			opp.ScheduleType = o.schedule
			opp.RecurrenceDesc = nullable(o.recurrence)
			opp.TimeCommitment = nullable(o.commitment)
			opp.LocationAddress = nullable(o.location)
			opp.IsRemote = o.remote
			if o.needed > 0 {
				opp.VolunteersNeeded.Int64 = o.needed
				opp.VolunteersNeeded.Valid = true
			}
			if o.startInDays > 0 {
				opp.StartDate.Time = now.AddDate(0, 0, o.startInDays)
				opp.StartDate.Valid = true
			}
			opp.CreatedAt = now.AddDate(0, 0, -60)
			opp.UpdatedAt = now.AddDate(0, 0, -5)

			if _, err := tx.NamedExecContext(ctx, insertOppSQL, opp); err != nil {
				return fmt.Errorf("failed to insert opportunity %q: %w", o.title, err)
			}
			oppIDs[i] = opp.ID
			oppCount++
		}

		for _, p := range spec.posts {
			post := models.NewPost(org.ID)
			post.Title = p.title
			post.Description = nullable(p.description)
			post.MediaType = "video"
			post.CreatedAt = now.AddDate(0, 0, -p.ageDays)
			post.UpdatedAt = post.CreatedAt
			if p.oppIndex >= 0 && p.oppIndex < len(oppIDs) {
				post.OpportunityID = nullable(oppIDs[p.oppIndex])
			}

			if _, err := tx.NamedExecContext(ctx, insertPostSQL, post); err != nil {
				return fmt.Errorf("failed to insert post %q: %w", p.title, err)
			}
			postCount++

			media := models.NewPostMedia(post.ID,
				fmt.Sprintf("https://media.scrollforcause.dev/videos/%s/720p.mp4", post.ID))
			media.ThumbnailURL = nullable(
				fmt.Sprintf("https://media.scrollforcause.dev/videos/%s/thumb.jpg", post.ID))
			media.DurationSeconds.Int64, media.DurationSeconds.Valid = 10, true
			media.Width.Int64, media.Width.Valid = 1080, true
			media.Height.Int64, media.Height.Valid = 1920, true
			media.CreatedAt = post.CreatedAt

			if _, err := tx.NamedExecContext(ctx, insertMediaSQL, media); err != nil {
				return fmt.Errorf("failed to insert media for post %q: %w", p.title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	log.Info().
		Int("organizations", orgCount).
		Int("opportunities", oppCount).
		Int("posts", postCount).
		Msg("Seed completed successfully")
	return nil
}

const insertOrgSQL = `
	INSERT INTO organizations (
		id, user_id, name, ein, description, contact_name, contact_email,
		website_url, logo_url, cover_image_url, city, state,
		verification_status, verified_at, follower_count, is_active,
		created_at, updated_at
	) VALUES (
		:id, :user_id, :name, :ein, :description, :contact_name, :contact_email,
		:website_url, :logo_url, :cover_image_url, :city, :state,
		:verification_status, :verified_at, :follower_count, :is_active,
		:created_at, :updated_at
	)`

const insertOppSQL = `
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
	)`

const insertPostSQL = `
	INSERT INTO posts (
		id, organization_id, opportunity_id, title, description, media_type,
		status, view_count, created_at, updated_at
	) VALUES (
		:id, :organization_id, :opportunity_id, :title, :description, :media_type,
		:status, :view_count, :created_at, :updated_at
	)`

const insertMediaSQL = `
	INSERT INTO post_media (
		id, post_id, media_url, thumbnail_url, duration_seconds, width, height,
		display_order, created_at
	) VALUES (
		:id, :post_id, :media_url, :thumbnail_url, :duration_seconds, :width, :height,
		:display_order, :created_at
	)`

func nullable(s string) (out sql.NullString) {
	if s != "" {
		out.String = s
		out.Valid = true
	}
	return out
}
