package models

import (
	"database/sql"

	"github.com/google/uuid"
)

// Category represents a row in the 'categories' table
type Category struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Slug         string         `db:"slug"`
	Icon         sql.NullString `db:"icon"`
	DisplayOrder int            `db:"display_order"`
	IsActive     bool           `db:"is_active"`
}

// NewCategory creates a new Category with default values
func NewCategory(name, slug string) *Category {
	return &Category{
		ID:       uuid.NewString(),
		Name:     name,
		Slug:     slug,
		IsActive: true,
	}
}
