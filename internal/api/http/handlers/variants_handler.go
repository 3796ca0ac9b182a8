package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wholesale-hub/wholesale-service/internal/api/dto"
	"github.com/wholesale-hub/wholesale-service/internal/repository"
	"github.com/wholesale-hub/wholesale-service/internal/service"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

// VariantsHandler exposes stock listing and update endpoints.
type VariantsHandler struct {
	variants VariantService
}

// NewVariantsHandler constructs handler.
func NewVariantsHandler(variants VariantService) *VariantsHandler {
	return &VariantsHandler{variants: variants}
}

// List handles GET /api/v1/wholesaler/products/variants.
func (h *VariantsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	query, err := parseVariantQuery(c)
	if err != nil {
		return err
	}

	page, err := h.variants.ListVariants(c.UserContext(), p.SubjectID, query)
	if err != nil {
		return err
	}
	return c.JSON(dto.VariantPageFromService(page))
}

// ListForProduct handles GET /api/v1/wholesaler/products/:productId/variants.
func (h *VariantsHandler) ListForProduct(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	variants, err := h.variants.ListProductVariants(c.UserContext(), p.SubjectID, productID)
	if err != nil {
		return err
	}
	return c.JSON(dto.VariantListResponse{ProductID: productID, ProdVariants: dto.VariantItemsFromDomain(variants)})
}

// UpdateStocks handles PATCH /api/v1/wholesaler/products/:productId/variants.
func (h *VariantsHandler) UpdateStocks(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	var req dto.UpdateStocksRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	variants, err := h.variants.UpdateStocks(c.UserContext(), p.SubjectID, productID, req.ToStockUpdates())
	if err != nil {
		return err
	}
	return c.JSON(dto.VariantListResponse{ProductID: productID, ProdVariants: dto.VariantItemsFromDomain(variants)})
}

// UpdateStock handles PATCH /api/v1/wholesaler/products/:productId/variants/:variantId.
func (h *VariantsHandler) UpdateStock(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	variantID, err := pathID(c, "variantId")
	if err != nil {
		return err
	}
	var req dto.UpdateStockRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	variant, err := h.variants.UpdateStock(c.UserContext(), p.SubjectID, productID, variantID, *req.Stock)
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateStockResponse{ProductID: productID, ProdVariant: dto.VariantItemFromDomain(*variant)})
}

// parseVariantQuery reads categoryIds, isActive, keyword, page, size and
// sort=field,direction from the query string.
func parseVariantQuery(c *fiber.Ctx) (service.VariantQuery, error) {
	q := service.VariantQuery{
		Keyword: strings.TrimSpace(c.Query("keyword")),
		SortBy:  repository.VariantSortCreatedAt,
	}

	for _, raw := range strings.Split(c.Query("categoryIds"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperrors.NewValidationError("invalid query parameter", map[string]any{"categoryIds": raw})
		}
		q.CategoryIDs = append(q.CategoryIDs, id)
	}

	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return q, apperrors.NewValidationError("invalid query parameter", map[string]any{"isActive": raw})
		}
		q.Active = &active
	}

	var err error
	if q.Page, err = queryInt(c, "page", 0); err != nil {
		return q, err
	}
	if q.Size, err = queryInt(c, "size", 20); err != nil {
		return q, err
	}

	if raw := c.Query("sort"); raw != "" {
		field, direction, _ := strings.Cut(raw, ",")
		switch repository.VariantSort(strings.TrimSpace(field)) {
		case repository.VariantSortCreatedAt:
			q.SortBy = repository.VariantSortCreatedAt
		case repository.VariantSortProductName:
			q.SortBy = repository.VariantSortProductName
		default:
			return q, apperrors.NewValidationError("invalid sort field", map[string]any{"sort": raw})
		}
		q.Ascending = strings.EqualFold(strings.TrimSpace(direction), "asc")
	}
	return q, nil
}

func queryInt(c *fiber.Ctx, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.NewValidationError("invalid query parameter", map[string]any{name: raw})
	}
	return n, nil
}
