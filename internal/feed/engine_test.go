package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo serves a fixed slice already in descending (createdAt, id) order,
// applying the cursor predicate the way a real store would.
type fakeRepo struct {
	entries []Entry
	err     error

	calls      int
	lastBefore *Cursor
	lastLimit  int
}

func (r *fakeRepo) FetchEligible(_ context.Context, before *Cursor, limit int) ([]Entry, error) {
	r.calls++
	r.lastBefore = before
	r.lastLimit = limit
	if r.err != nil {
		return nil, r.err
	}

	var out []Entry
	for _, e := range r.entries {
		if before != nil {
			if e.CreatedAt.After(before.CreatedAt) {
				continue
			}
			if e.CreatedAt.Equal(before.CreatedAt) && e.PostID >= before.ID {
				continue
			}
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func makeEntries(n int) []Entry {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = Entry{
			PostID:    uuid.NewString(),
			Title:     fmt.Sprintf("post %d", i),
			MediaType: "video",
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return entries
}

func TestGetPageRejectsOutOfRangeLimit(t *testing.T) {
	engine := NewEngine(&fakeRepo{})

	for _, limit := range []int{0, -1, 21, 100} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			_, err := engine.GetPage(context.Background(), "", limit)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Details, 1)
			assert.Equal(t, "limit", verr.Details[0].Field)
		})
	}
}

func TestGetPageAcceptsBoundaryLimits(t *testing.T) {
	repo := &fakeRepo{entries: makeEntries(30)}
	engine := NewEngine(repo)

	for _, limit := range []int{MinLimit, MaxLimit} {
		page, err := engine.GetPage(context.Background(), "", limit)
		require.NoError(t, err)
		assert.Len(t, page.Entries, limit)
		assert.True(t, page.HasMore)
	}
}

func TestGetPageRejectsMalformedCursor(t *testing.T) {
	repo := &fakeRepo{entries: makeEntries(5)}
	engine := NewEngine(repo)

	_, err := engine.GetPage(context.Background(), "garbage", 10)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Details, 1)
	assert.Equal(t, "cursor", verr.Details[0].Field)
	assert.Zero(t, repo.calls, "validation must fail before any store access")
}

func TestGetPageFetchesOneExtraRow(t *testing.T) {
	repo := &fakeRepo{entries: makeEntries(30)}
	engine := NewEngine(repo)

	_, err := engine.GetPage(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Equal(t, 11, repo.lastLimit)
}

func TestGetPageLastPageHasNoCursor(t *testing.T) {
	repo := &fakeRepo{entries: makeEntries(7)}
	engine := NewEngine(repo)

	page, err := engine.GetPage(context.Background(), "", 10)
	require.NoError(t, err)

	assert.Len(t, page.Entries, 7)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestGetPageEmptyFeed(t *testing.T) {
	engine := NewEngine(&fakeRepo{})

	page, err := engine.GetPage(context.Background(), "", 10)
	require.NoError(t, err)

	assert.NotNil(t, page.Entries)
	assert.Empty(t, page.Entries)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestGetPageWalksWholeFeedWithoutDuplicatesOrGaps(t *testing.T) {
	all := makeEntries(5)
	engine := NewEngine(&fakeRepo{entries: all})

	var (
		seen   []string
		cursor string
		pages  int
	)
	for {
		page, err := engine.GetPage(context.Background(), cursor, 2)
		require.NoError(t, err)
		pages++

		for _, e := range page.Entries {
			seen = append(seen, e.PostID)
		}
		if !page.HasMore {
			assert.Nil(t, page.NextCursor)
			break
		}
		require.NotNil(t, page.NextCursor)
		cursor = *page.NextCursor
	}

	assert.Equal(t, 3, pages)
	require.Len(t, seen, len(all))
	for i, e := range all {
		assert.Equal(t, e.PostID, seen[i], "entry %d out of order", i)
	}
}

func TestGetPageTieBreaksOnID(t *testing.T) {
	same := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{PostID: "cccccccc-0000-4000-8000-000000000000", CreatedAt: same},
		{PostID: "bbbbbbbb-0000-4000-8000-000000000000", CreatedAt: same},
		{PostID: "aaaaaaaa-0000-4000-8000-000000000000", CreatedAt: same},
	}
	engine := NewEngine(&fakeRepo{entries: entries})

	first, err := engine.GetPage(context.Background(), "", 2)
	require.NoError(t, err)
	require.True(t, first.HasMore)

	second, err := engine.GetPage(context.Background(), *first.NextCursor, 2)
	require.NoError(t, err)

	require.Len(t, second.Entries, 1)
	assert.Equal(t, entries[2].PostID, second.Entries[0].PostID)
	assert.False(t, second.HasMore)
}

func TestGetPageWrapsStoreFailures(t *testing.T) {
	engine := NewEngine(&fakeRepo{err: errors.New("database is locked")})

	_, err := engine.GetPage(context.Background(), "", 10)

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Contains(t, depErr.Error(), "database is locked")
}

func TestGetPagePassesDependencyErrorsThrough(t *testing.T) {
	orig := &DependencyError{Err: errors.New("connection refused")}
	engine := NewEngine(&fakeRepo{err: orig})

	_, err := engine.GetPage(context.Background(), "", 10)
	assert.Same(t, orig, err)
}
