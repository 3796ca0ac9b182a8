package handlers

import (
	"context"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/service"
)

// AuthService is the account and session surface used by AuthHandler.
type AuthService interface {
	Signup(ctx context.Context, loginID, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, loginID, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, requesterID, refreshToken string) error
}

// ProductService is the product surface used by ProductsHandler.
type ProductService interface {
	CreateProduct(ctx context.Context, ownerID string, input service.ProductCreateInput) (*domain.Product, error)
	GetProduct(ctx context.Context, ownerID string, productID int64) (*domain.ProductAggregate, error)
	GetProductForEdit(ctx context.Context, ownerID string, productID int64) (*domain.ProductAggregate, []domain.Category, error)
	SetActive(ctx context.Context, ownerID string, productID int64, active bool) error
	DeleteProduct(ctx context.Context, ownerID string, productID int64) error
}

// VariantService is the stock surface used by VariantsHandler.
type VariantService interface {
	ListVariants(ctx context.Context, ownerID string, q service.VariantQuery) (*service.VariantPage, error)
	ListProductVariants(ctx context.Context, ownerID string, productID int64) ([]domain.Variant, error)
	UpdateStocks(ctx context.Context, ownerID string, productID int64, updates []service.StockUpdate) ([]domain.Variant, error)
	UpdateStock(ctx context.Context, ownerID string, productID, variantID int64, stock int) (*domain.Variant, error)
}

// CategoryService lists categories.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}
