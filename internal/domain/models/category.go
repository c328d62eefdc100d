package models

import "admin/internal/domain"

// Category is a taxonomy entry. The three taxonomies (celebrity, merch product
// and digital product categories) share the shape and differ only in which
// dependent count the API fills in.
type Category struct {
	ID             domain.ID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Icon           string    `json:"icon"`
	CelebrityCount int       `json:"celebrityCount,omitempty"`
	ProductCount   int       `json:"productCount,omitempty"`
	CreatedAt      string    `json:"createdAt"`
}

// Dependents is the number of entities that still reference the category.
func (c Category) Dependents() int {
	return c.CelebrityCount + c.ProductCount
}

// CategoryInput is the create form; both fields are required.
type CategoryInput struct {
	Name string `json:"name" form:"name" binding:"required"`
	Icon string `json:"icon" form:"icon" binding:"required"`
}

type CategoryPatch struct {
	Name *string `json:"name,omitempty"`
	Icon *string `json:"icon,omitempty"`
}
