package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/repository"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

// OwnershipGuard loads products and variants on behalf of a requester and
// fails closed unless the requester owns them. It never mutates.
type OwnershipGuard struct {
	products repository.ProductRepository
	variants repository.VariantRepository
	logger   *zap.Logger
}

// NewOwnershipGuard constructs the guard.
func NewOwnershipGuard(products repository.ProductRepository, variants repository.VariantRepository, logger *zap.Logger) *OwnershipGuard {
	return &OwnershipGuard{products: products, variants: variants, logger: logger}
}

// RequireOwnedProduct returns the product when requesterID owns it.
func (g *OwnershipGuard) RequireOwnedProduct(ctx context.Context, productID int64, requesterID string) (*domain.Product, error) {
	product, err := g.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			g.logger.Warn("product not found", zap.Int64("product_id", productID), zap.String("requester_id", requesterID))
			return nil, apperrors.ErrProductNotFound()
		}
		return nil, err
	}
	if product.OwnerID != requesterID {
		g.logger.Warn("product access denied",
			zap.Int64("product_id", productID),
			zap.String("requester_id", requesterID),
			zap.String("owner_id", product.OwnerID))
		return nil, apperrors.ErrAccessDenied()
	}
	return product, nil
}

// RequireOwnedVariant returns the variant when it belongs to productID and
// requesterID owns that product.
func (g *OwnershipGuard) RequireOwnedVariant(ctx context.Context, productID, variantID int64, requesterID string) (*domain.Variant, error) {
	variant, err := g.variants.GetByID(ctx, variantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			g.logger.Warn("variant not found", zap.Int64("variant_id", variantID), zap.String("requester_id", requesterID))
			return nil, apperrors.ErrVariantNotFound()
		}
		return nil, err
	}
	if variant.ProductID != productID {
		g.logger.Warn("variant does not belong to product",
			zap.Int64("variant_id", variantID),
			zap.Int64("product_id", productID),
			zap.Int64("actual_product_id", variant.ProductID),
			zap.String("requester_id", requesterID))
		return nil, apperrors.ErrProductVariantMismatch()
	}
	if _, err := g.RequireOwnedProduct(ctx, productID, requesterID); err != nil {
		return nil, err
	}
	return variant, nil
}
