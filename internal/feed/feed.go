// Package feed implements the cursor-paginated discovery feed: the wire
// entry types, the opaque cursor codec, and the query engine that turns
// (cursor, limit) requests into stable, deterministically ordered pages.
package feed

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Page size bounds enforced before any store access.
const (
	MinLimit = 1
	MaxLimit = 20
)

// Media is one attachment of a feed entry, in explicit display order.
type Media struct {
	ID           string  `json:"id"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Duration     *int    `json:"duration"`
	Width        *int    `json:"width"`
	Height       *int    `json:"height"`
}

// Organization is the owning entity of a feed entry.
type Organization struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	LogoURL    *string `json:"logoUrl"`
	IsVerified bool    `json:"isVerified"`
}

// Opportunity is the optional related activity attached to a feed entry.
type Opportunity struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	ScheduleType   string     `json:"scheduleType"`
	StartDate      *time.Time `json:"startDate"`
	Location       *string    `json:"location"`
	IsRemote       bool       `json:"isRemote"`
	TimeCommitment *string    `json:"timeCommitment"`
}

// Entry is the unit returned by the feed.
type Entry struct {
	PostID       string       `json:"postId"`
	Title        string       `json:"title"`
	Description  *string      `json:"description"`
	MediaType    string       `json:"mediaType"`
	CreatedAt    time.Time    `json:"createdAt"`
	Media        []Media      `json:"media"`
	Organization Organization `json:"organization"`
	Opportunity  *Opportunity `json:"opportunity"`
}

// Position returns the entry's place in the feed's total order.
func (e Entry) Position() Cursor {
	return Cursor{CreatedAt: e.CreatedAt, ID: e.PostID}
}

// Page is one slice of the feed plus the token to resume after it.
type Page struct {
	Entries    []Entry
	NextCursor *string
	HasMore    bool
}

// Repository provides eligible feed entries in descending (createdAt, id)
// order, strictly before the given position when one is set. Implementations
// must apply the eligibility gate at query time: entry published, owning
// organization active and verified.
type Repository interface {
	FetchEligible(ctx context.Context, before *Cursor, limit int) ([]Entry, error)
}

// Engine answers feed page requests. Read-only; all state lives in the
// cursor tokens it mints.
type Engine struct {
	repo Repository
}

// NewEngine creates a new feed engine backed by the given repository.
func NewEngine(repo Repository) *Engine {
	return &Engine{repo: repo}
}

// GetPage returns one deterministically ordered slice of the feed.
// rawCursor is the opaque token from the previous page, or "" for the first
// page. Invalid input fails with *ValidationError before any store access;
// store failures surface as *DependencyError.
func (e *Engine) GetPage(ctx context.Context, rawCursor string, limit int) (Page, error) {
	if limit < MinLimit || limit > MaxLimit {
		return Page{}, NewValidationError("limit",
			fmt.Sprintf("limit must be between %d and %d", MinLimit, MaxLimit))
	}

	var before *Cursor
	if rawCursor != "" {
		c, err := DecodeCursor(rawCursor)
		if err != nil {
			return Page{}, NewValidationError("cursor", err.Error())
		}
		before = &c
	}

	// Fetch one extra row to learn whether another page exists without a
	// second query.
	rows, err := e.repo.FetchEligible(ctx, before, limit+1)
	if err != nil {
		var depErr *DependencyError
		if errors.As(err, &depErr) {
			return Page{}, err
		}
		return Page{}, &DependencyError{Err: err}
	}

	page := Page{Entries: rows}
	if len(rows) > limit {
		page.Entries = rows[:limit]
		page.HasMore = true
		last := page.Entries[len(page.Entries)-1]
		cursor := EncodeCursor(last.Position())
		page.NextCursor = &cursor
	}

	if page.Entries == nil {
		page.Entries = []Entry{}
	}
	return page, nil
}
