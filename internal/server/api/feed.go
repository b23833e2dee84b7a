package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"

	"scrollforcause/platform/internal/feed"
)

// PagedResponse is the feed page envelope.
type PagedResponse struct {
	Data    []feed.Entry `json:"data"`
	Cursor  *string      `json:"cursor"`
	HasMore bool         `json:"hasMore"`
}

// FeedHandler serves the public discovery feed.
type FeedHandler struct {
	engine       *feed.Engine
	defaultLimit int
}

// NewFeedHandler creates a new handler instance.
func NewFeedHandler(engine *feed.Engine, defaultLimit int) *FeedHandler {
	return &FeedHandler{engine: engine, defaultLimit: defaultLimit}
}

// GetFeed handles requests to fetch one feed page.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	log.Debug().Msg("Processing feed request")

	query := r.URL.Query()
	cursorStr := query.Get("cursor")
	limitStr := query.Get("limit")

	limit := h.defaultLimit
	if limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil {
			log.Warn().Str("limit", limitStr).Msg("Non-numeric 'limit' parameter")
			writeError(w, r, feed.NewValidationError("limit", "limit must be an integer"))
			return
		}
		limit = parsedLimit
	}

	page, err := h.engine.GetPage(r.Context(), cursorStr, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().
		Int("count", len(page.Entries)).
		Bool("has_more", page.HasMore).
		Msg("Feed page served")

	writeJSON(w, r, http.StatusOK, PagedResponse{
		Data:    page.Entries,
		Cursor:  page.NextCursor,
		HasMore: page.HasMore,
	})
}
