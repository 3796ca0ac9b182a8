package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/events"
	"github.com/wholesale-hub/wholesale-service/internal/repository"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

// ProductService coordinates product workflows for wholesalers.
type ProductService struct {
	products   repository.ProductRepository
	variants   repository.VariantRepository
	categories repository.CategoryRepository
	guard      *OwnershipGuard
	tx         repository.TxManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProductDependencies bundles collaborators for the product service.
type ProductDependencies struct {
	ProductRepo  repository.ProductRepository
	VariantRepo  repository.VariantRepository
	CategoryRepo repository.CategoryRepository
	Guard        *OwnershipGuard
	TxManager    repository.TxManager
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// ImageInput describes a product image.
type ImageInput struct {
	URL       string
	SortOrder int
}

// BlockInput describes a detail block.
type BlockInput struct {
	BlockType  domain.BlockType
	Content    string
	ImageURL   string
	BlockOrder int
}

// ProductCreateInput describes product creation payload. Nil Price means 0
// and nil SampleAvailable means true.
type ProductCreateInput struct {
	Name            string
	CategoryID      int
	Price           *int
	SampleAvailable *bool
	Memo            string
	Description     string
	Images          []ImageInput
	Blocks          []BlockInput
	Sizes           string
	Colors          string
}

// NewProductService constructs the service.
func NewProductService(deps ProductDependencies) *ProductService {
	return &ProductService{
		products:   deps.ProductRepo,
		variants:   deps.VariantRepo,
		categories: deps.CategoryRepo,
		guard:      deps.Guard,
		tx:         deps.TxManager,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateProduct stores a product with its images, blocks and one zero-stock
// variant per (color, size) pair.
func (s *ProductService) CreateProduct(ctx context.Context, ownerID string, input ProductCreateInput) (*domain.Product, error) {
	sizes, err := ParseOptions("sizes", input.Sizes)
	if err != nil {
		return nil, err
	}
	colors, err := ParseOptions("colors", input.Colors)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		OwnerID:         ownerID,
		CategoryID:      input.CategoryID,
		Name:            input.Name,
		SampleAvailable: true,
		Active:          true,
		Memo:            input.Memo,
		Description:     input.Description,
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.SampleAvailable != nil {
		product.SampleAvailable = *input.SampleAvailable
	}

	variantCount := 0
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				s.logger.Warn("category not found", zap.String("op", "create_product"), zap.Int("category_id", input.CategoryID))
				return apperrors.ErrCategoryNotFound()
			}
			return err
		}

		if err := s.products.Create(ctx, product); err != nil {
			return err
		}
		for _, img := range input.Images {
			if err := s.products.AddImage(ctx, &domain.ProductImage{
				ProductID: product.ID,
				URL:       img.URL,
				SortOrder: img.SortOrder,
			}); err != nil {
				return err
			}
		}
		for _, b := range input.Blocks {
			if err := s.products.AddBlock(ctx, &domain.DetailBlock{
				ProductID:  product.ID,
				BlockType:  b.BlockType,
				Content:    b.Content,
				ImageURL:   b.ImageURL,
				BlockOrder: b.BlockOrder,
			}); err != nil {
				return err
			}
		}
		for _, color := range colors {
			for _, size := range sizes {
				if err := s.variants.Create(ctx, &domain.Variant{
					ProductID: product.ID,
					Size:      size,
					Color:     color,
				}); err != nil {
					return err
				}
				variantCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("op", "create_product"),
		zap.String("owner_id", ownerID),
		zap.Int64("product_id", product.ID),
		zap.Int("variants", variantCount))
	emit(ctx, s.dispatcher, s.logger, events.New(events.EventProductCreated, product.ID, ownerID,
		events.ProductCreatedPayload{Name: product.Name, CategoryID: product.CategoryID, VariantCount: variantCount}))
	return product, nil
}

// GetProduct returns the owned product with its dependents.
func (s *ProductService) GetProduct(ctx context.Context, ownerID string, productID int64) (*domain.ProductAggregate, error) {
	product, err := s.guard.RequireOwnedProduct(ctx, productID, ownerID)
	if err != nil {
		return nil, err
	}

	agg := &domain.ProductAggregate{Product: *product}
	category, err := s.categories.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	agg.Category = *category

	if agg.Images, err = s.products.ListImages(ctx, productID); err != nil {
		return nil, err
	}
	if agg.Blocks, err = s.products.ListBlocks(ctx, productID); err != nil {
		return nil, err
	}
	if agg.Variants, err = s.variants.ListByProduct(ctx, productID); err != nil {
		return nil, err
	}
	return agg, nil
}

// GetProductForEdit returns the product detail plus the selectable categories.
func (s *ProductService) GetProductForEdit(ctx context.Context, ownerID string, productID int64) (*domain.ProductAggregate, []domain.Category, error) {
	agg, err := s.GetProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return agg, categories, nil
}

// SetActive switches the selling state. Requesting the current state fails
// with NOT_CHANGED.
func (s *ProductService) SetActive(ctx context.Context, ownerID string, productID int64, active bool) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		product, err := s.guard.RequireOwnedProduct(ctx, productID, ownerID)
		if err != nil {
			return err
		}
		if product.Active == active {
			s.logger.Warn("activation unchanged", zap.String("op", "set_active"),
				zap.Int64("product_id", productID), zap.Bool("active", active))
			if active {
				return apperrors.ErrNotChanged("product is already on sale")
			}
			return apperrors.ErrNotChanged("product is already off sale")
		}
		return s.products.UpdateActive(ctx, productID, active)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product activation changed", zap.String("op", "set_active"),
		zap.Int64("product_id", productID), zap.Bool("active", active))
	emit(ctx, s.dispatcher, s.logger, events.New(events.EventProductActivationChanged, productID, ownerID,
		events.ProductActivationChangedPayload{Active: active}))
	return nil
}

// DeleteProduct removes the product and its dependents, children first.
func (s *ProductService) DeleteProduct(ctx context.Context, ownerID string, productID int64) error {
	var name string
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		product, err := s.guard.RequireOwnedProduct(ctx, productID, ownerID)
		if err != nil {
			return err
		}
		name = product.Name

		if err := s.variants.DeleteByProduct(ctx, productID); err != nil {
			return err
		}
		if err := s.products.DeleteImages(ctx, productID); err != nil {
			return err
		}
		if err := s.products.DeleteBlocks(ctx, productID); err != nil {
			return err
		}
		return s.products.Delete(ctx, productID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("op", "delete_product"),
		zap.String("owner_id", ownerID), zap.Int64("product_id", productID))
	emit(ctx, s.dispatcher, s.logger, events.New(events.EventProductDeleted, productID, ownerID,
		events.ProductDeletedPayload{Name: name}))
	return nil
}
