package dto

import (
	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/service"
)

// VariantItem is a variant without its product context.
type VariantItem struct {
	ID    int64  `json:"id"`
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
}

// VariantListResponse lists a product's variants.
type VariantListResponse struct {
	ProductID    int64         `json:"productId"`
	ProdVariants []VariantItem `json:"prodVariants"`
}

// ProdStock is one entry of a bulk stock update.
type ProdStock struct {
	ID    *int64 `json:"id" validate:"required"`
	Stock *int   `json:"stock" validate:"required,gte=0"`
}

// UpdateStocksRequest replaces the stock of every variant of a product.
type UpdateStocksRequest struct {
	ProdStocks []ProdStock `json:"prodStocks" validate:"dive"`
}

// UpdateStockRequest sets a single variant's stock.
type UpdateStockRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

// UpdateStockResponse echoes the updated variant.
type UpdateStockResponse struct {
	ProductID   int64       `json:"productId"`
	ProdVariant VariantItem `json:"prodVariant"`
}

// VariantListingDTO is one row of the catalog listing.
type VariantListingDTO struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"productId"`
	ProductName  string `json:"productName"`
	Size         string `json:"size"`
	Color        string `json:"color"`
	Stock        int    `json:"stock"`
	Price        int    `json:"price"`
	IsActive     bool   `json:"isActive"`
	CategoryName string `json:"categoryName"`
}

// VariantPageResponse is a page of the catalog listing.
type VariantPageResponse struct {
	Content       []VariantListingDTO `json:"content"`
	Page          int                 `json:"page"`
	Size          int                 `json:"size"`
	TotalElements int64               `json:"totalElements"`
	TotalPages    int                 `json:"totalPages"`
}

// ToStockUpdates maps the request onto service input.
func (r UpdateStocksRequest) ToStockUpdates() []service.StockUpdate {
	out := make([]service.StockUpdate, 0, len(r.ProdStocks))
	for _, s := range r.ProdStocks {
		out = append(out, service.StockUpdate{VariantID: *s.ID, Stock: *s.Stock})
	}
	return out
}

// VariantItemsFromDomain converts variants.
func VariantItemsFromDomain(variants []domain.Variant) []VariantItem {
	out := make([]VariantItem, 0, len(variants))
	for _, v := range variants {
		out = append(out, VariantItemFromDomain(v))
	}
	return out
}

// VariantItemFromDomain converts one variant.
func VariantItemFromDomain(v domain.Variant) VariantItem {
	return VariantItem{ID: v.ID, Size: v.Size, Color: v.Color, Stock: v.Stock}
}

// VariantPageFromService converts a listing page.
func VariantPageFromService(page *service.VariantPage) VariantPageResponse {
	content := make([]VariantListingDTO, 0, len(page.Items))
	for _, item := range page.Items {
		content = append(content, VariantListingDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Size:         item.Size,
			Color:        item.Color,
			Stock:        item.Stock,
			Price:        item.Price,
			IsActive:     item.Active,
			CategoryName: item.CategoryName,
		})
	}
	return VariantPageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}
