package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/api/dto"
)

// ProductsHandler exposes wholesaler product endpoints.
type ProductsHandler struct {
	products ProductService
	logger   *zap.Logger
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products ProductService, logger *zap.Logger) *ProductsHandler {
	return &ProductsHandler{products: products, logger: logger}
}

// Create handles POST /api/v1/wholesaler/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ProductCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.products.CreateProduct(c.UserContext(), p.SubjectID, req.ToCreateInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.ProductCreateResponse{ProductID: product.ID})
}

// Get handles GET /api/v1/wholesaler/products/:productId.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	agg, err := h.products.GetProduct(c.UserContext(), p.SubjectID, productID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ProductFromAggregate(agg))
}

// GetForEdit handles GET /api/v1/wholesaler/products/:productId/edit.
func (h *ProductsHandler) GetForEdit(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	agg, categories, err := h.products.GetProductForEdit(c.UserContext(), p.SubjectID, productID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ProductEditResponse{
		ProductResponse: dto.ProductFromAggregate(agg),
		Categories:      dto.CategoriesFromDomain(categories),
	})
}

// UpdateIsActive handles PATCH /api/v1/wholesaler/products/:productId/is-active.
func (h *ProductsHandler) UpdateIsActive(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	var req dto.UpdateIsActiveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.products.SetActive(c.UserContext(), p.SubjectID, productID, *req.IsActive); err != nil {
		return err
	}
	return c.JSON(dto.UpdateIsActiveResponse{ProductID: productID, IsActive: *req.IsActive})
}

// Delete handles DELETE /api/v1/wholesaler/products/:productId.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	if err := h.products.DeleteProduct(c.UserContext(), p.SubjectID, productID); err != nil {
		return err
	}
	h.logger.Info("product deleted", zap.Int64("product_id", productID), zap.String("owner", p.SubjectID))
	return c.JSON(dto.ProductDeleteResponse{ProductID: productID, Message: "product deleted"})
}
