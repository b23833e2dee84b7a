package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Post publication statuses. Only published posts are ever eligible for the
// public feed.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusRemoved   = "removed"
)

// Post represents a row in the 'posts' table
type Post struct {
	ID             string         `db:"id"`
	OrganizationID string         `db:"organization_id"`
	OpportunityID  sql.NullString `db:"opportunity_id"`
	Title          string         `db:"title"`
	Description    sql.NullString `db:"description"`
	MediaType      string         `db:"media_type"`
	Status         string         `db:"status"`
	ViewCount      int            `db:"view_count"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// NewPost creates a new Post with default values
func NewPost(organizationID string) *Post {
	now := time.Now().UTC()
	return &Post{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		MediaType:      "image",
		Status:         PostStatusPublished,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// PostMedia represents a row in the 'post_media' table
type PostMedia struct {
	ID              string         `db:"id"`
	PostID          string         `db:"post_id"`
	MediaURL        string         `db:"media_url"`
	ThumbnailURL    sql.NullString `db:"thumbnail_url"`
	DurationSeconds sql.NullInt64  `db:"duration_seconds"`
	Width           sql.NullInt64  `db:"width"`
	Height          sql.NullInt64  `db:"height"`
	DisplayOrder    int            `db:"display_order"`
	CreatedAt       time.Time      `db:"created_at"`
}

// NewPostMedia creates a new PostMedia with default values
func NewPostMedia(postID, mediaURL string) *PostMedia {
	return &PostMedia{
		ID:        uuid.NewString(),
		PostID:    postID,
		MediaURL:  mediaURL,
		CreatedAt: time.Now().UTC(),
	}
}
