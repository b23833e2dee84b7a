package api

import (
	"net/http"

	"scrollforcause/platform/internal/server/storage"
)

// CategoryResponse is one category in the public listing.
type CategoryResponse struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	Icon       *string `json:"icon"`
}

// CategoryHandler serves the public category listing.
type CategoryHandler struct {
	repo storage.CategoryRepository
}

// NewCategoryHandler creates a new handler instance.
func NewCategoryHandler(repo storage.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

// GetCategories returns active categories in display order.
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListActive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp := CategoryResponse{CategoryID: c.ID, Name: c.Name, Slug: c.Slug}
		if c.Icon.Valid {
			icon := c.Icon.String
			resp.Icon = &icon
		}
		out = append(out, resp)
	}

	writeJSON(w, r, http.StatusOK, out)
}
