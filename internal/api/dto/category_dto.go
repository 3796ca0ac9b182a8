package dto

import "github.com/wholesale-hub/wholesale-service/internal/domain"

// CategoryDTO is the wire form of a category.
type CategoryDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// CategoriesFromDomain converts a category list.
func CategoriesFromDomain(categories []domain.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryDTO{ID: c.ID, Name: c.Name})
	}
	return out
}
