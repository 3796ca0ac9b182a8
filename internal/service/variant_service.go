package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/events"
	"github.com/wholesale-hub/wholesale-service/internal/repository"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

const maxPageSize = 100

// VariantService manages stock levels.
type VariantService struct {
	variants   repository.VariantRepository
	guard      *OwnershipGuard
	tx         repository.TxManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// VariantDependencies bundles collaborators for the variant service.
type VariantDependencies struct {
	VariantRepo repository.VariantRepository
	Guard       *OwnershipGuard
	TxManager   repository.TxManager
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// VariantQuery describes catalog listing parameters. Page is zero-based.
type VariantQuery struct {
	CategoryIDs []int
	Active      *bool
	Keyword     string
	SortBy      repository.VariantSort
	Ascending   bool
	Page        int
	Size        int
}

// VariantPage is one page of the catalog listing.
type VariantPage struct {
	Items         []domain.VariantListing
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// StockUpdate sets one variant's stock.
type StockUpdate struct {
	VariantID int64
	Stock     int
}

// NewVariantService constructs the service.
func NewVariantService(deps VariantDependencies) *VariantService {
	return &VariantService{
		variants:   deps.VariantRepo,
		guard:      deps.Guard,
		tx:         deps.TxManager,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListVariants pages through every variant the owner holds.
func (s *VariantService) ListVariants(ctx context.Context, ownerID string, q VariantQuery) (*VariantPage, error) {
	size := q.Size
	if size <= 0 {
		size = 20
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	page := q.Page
	if page < 0 {
		page = 0
	}

	items, total, err := s.variants.ListWithFilter(ctx, repository.VariantFilter{
		OwnerID:     ownerID,
		CategoryIDs: q.CategoryIDs,
		Active:      q.Active,
		Keyword:     q.Keyword,
		SortBy:      q.SortBy,
		Ascending:   q.Ascending,
		Limit:       size,
		Offset:      page * size,
	})
	if err != nil {
		return nil, err
	}

	return &VariantPage{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
	}, nil
}

// ListProductVariants returns all variants of an owned product.
func (s *VariantService) ListProductVariants(ctx context.Context, ownerID string, productID int64) ([]domain.Variant, error) {
	if _, err := s.guard.RequireOwnedProduct(ctx, productID, ownerID); err != nil {
		return nil, err
	}
	return s.variants.ListByProduct(ctx, productID)
}

// UpdateStocks replaces the stock of every variant of a product at once.
// The submitted id set must equal the product's variant id set.
func (s *VariantService) UpdateStocks(ctx context.Context, ownerID string, productID int64, updates []StockUpdate) ([]domain.Variant, error) {
	if len(updates) == 0 {
		s.logger.Warn("stock update without variants", zap.String("op", "update_stocks"), zap.Int64("product_id", productID))
		return nil, apperrors.ErrNoVariants()
	}

	var (
		result  []domain.Variant
		changes []events.VariantStockUpdatedPayload
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.guard.RequireOwnedProduct(ctx, productID, ownerID); err != nil {
			return err
		}
		existing, err := s.variants.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}

		requested := make(map[int64]int, len(updates))
		for _, u := range updates {
			if u.Stock < 0 {
				return apperrors.NewValidationError("stock must be zero or greater",
					map[string]any{"variantId": u.VariantID})
			}
			if _, dup := requested[u.VariantID]; dup {
				return apperrors.ErrInvalidProduct("duplicate variant id in request")
			}
			requested[u.VariantID] = u.Stock
		}
		if len(requested) != len(existing) {
			s.logger.Warn("stock update id set mismatch", zap.String("op", "update_stocks"), zap.Int64("product_id", productID))
			return apperrors.ErrInvalidProduct("variant ids do not match the product")
		}
		for _, v := range existing {
			if _, ok := requested[v.ID]; !ok {
				s.logger.Warn("stock update id set mismatch", zap.String("op", "update_stocks"), zap.Int64("product_id", productID))
				return apperrors.ErrInvalidProduct("variant ids do not match the product")
			}
		}

		for _, v := range existing {
			stock := requested[v.ID]
			if stock != v.Stock {
				if err := s.variants.UpdateStock(ctx, v.ID, stock); err != nil {
					return err
				}
				changes = append(changes, events.VariantStockUpdatedPayload{VariantID: v.ID, OldStock: v.Stock, NewStock: stock})
			}
			v.Stock = stock
			result = append(result, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stocks updated", zap.String("op", "update_stocks"),
		zap.Int64("product_id", productID), zap.Int("changed", len(changes)))
	for _, c := range changes {
		emit(ctx, s.dispatcher, s.logger, events.New(events.EventVariantStockUpdated, productID, ownerID, c))
	}
	return result, nil
}

// UpdateStock sets the stock of a single variant of an owned product.
func (s *VariantService) UpdateStock(ctx context.Context, ownerID string, productID, variantID int64, stock int) (*domain.Variant, error) {
	if stock < 0 {
		return nil, apperrors.NewValidationError("stock must be zero or greater", map[string]any{"variantId": variantID})
	}

	var (
		variant  *domain.Variant
		oldStock int
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		v, err := s.guard.RequireOwnedVariant(ctx, productID, variantID, ownerID)
		if err != nil {
			return err
		}
		oldStock = v.Stock
		if err := s.variants.UpdateStock(ctx, variantID, stock); err != nil {
			return err
		}
		v.Stock = stock
		variant = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock updated", zap.String("op", "update_stock"),
		zap.Int64("product_id", productID), zap.Int64("variant_id", variantID), zap.Int("stock", stock))
	if oldStock != stock {
		emit(ctx, s.dispatcher, s.logger, events.New(events.EventVariantStockUpdated, productID, ownerID,
			events.VariantStockUpdatedPayload{VariantID: variantID, OldStock: oldStock, NewStock: stock}))
	}
	return variant, nil
}
