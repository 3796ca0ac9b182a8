package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wholesale-hub/wholesale-service/internal/api/dto"
)

// CategoriesHandler serves the public category list.
type CategoriesHandler struct {
	categories CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// List handles GET /api/v1/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.CategoriesFromDomain(categories))
}
