package dto

import (
	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/service"
)

// ProductCreateRequest payload for product registration.
type ProductCreateRequest struct {
	ProdValue ProdValue `json:"prodValue"`
	Sizes     string    `json:"sizes" validate:"strictcomma"`
	Colors    string    `json:"colors" validate:"strictcomma"`
}

// ProdValue holds the editable product fields.
type ProdValue struct {
	ProductName  string           `json:"productName" validate:"required,max=100"`
	Category     *CategoryDTO     `json:"category" validate:"required"`
	Price        *int             `json:"price,omitempty" validate:"omitnil,gt=0"`
	IsSmplAva    *bool            `json:"isSmplAva,omitempty"`
	Memo         string           `json:"memo"`
	Description  string           `json:"description"`
	Images       []ImageDTO       `json:"images" validate:"dive"`
	DetailBlocks []DetailBlockDTO `json:"detailBlocks" validate:"dive"`
}

// ImageDTO is the wire form of a product image.
type ImageDTO struct {
	ID        int64  `json:"id,omitempty"`
	ImgURL    string `json:"imgUrl" validate:"required"`
	SortOrder int    `json:"sortOrder"`
}

// DetailBlockDTO is the wire form of a detail block.
type DetailBlockDTO struct {
	ID         int64  `json:"id,omitempty"`
	BlockType  string `json:"blockType" validate:"required,oneof=TEXT IMAGE VIDEO"`
	Content    string `json:"content"`
	ImgURL     string `json:"imgUrl"`
	BlockOrder int    `json:"blockOrder"`
}

// StockOption is the wire form of a variant inside product detail.
type StockOption struct {
	ID    int64  `json:"id"`
	Color string `json:"color"`
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// ProductCreateResponse returns the new product id.
type ProductCreateResponse struct {
	ProductID int64 `json:"productId"`
}

// ProductResponse is the product detail view.
type ProductResponse struct {
	ProductID    int64         `json:"productId"`
	ProdValue    ProdValue     `json:"prodValue"`
	StockOptions []StockOption `json:"stockOptions"`
}

// ProductEditResponse is the detail view plus selectable categories.
type ProductEditResponse struct {
	ProductResponse
	Categories []CategoryDTO `json:"categories"`
}

// UpdateIsActiveRequest toggles the selling state.
type UpdateIsActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// UpdateIsActiveResponse echoes the new state.
type UpdateIsActiveResponse struct {
	ProductID int64 `json:"productId"`
	IsActive  bool  `json:"isActive"`
}

// ProductDeleteResponse confirms a deletion.
type ProductDeleteResponse struct {
	ProductID int64  `json:"productId"`
	Message   string `json:"message"`
}

// ToCreateInput maps the request onto the service input.
func (r ProductCreateRequest) ToCreateInput() service.ProductCreateInput {
	pv := r.ProdValue
	input := service.ProductCreateInput{
		Name:            pv.ProductName,
		Price:           pv.Price,
		SampleAvailable: pv.IsSmplAva,
		Memo:            pv.Memo,
		Description:     pv.Description,
		Sizes:           r.Sizes,
		Colors:          r.Colors,
	}
	if pv.Category != nil {
		input.CategoryID = pv.Category.ID
	}
	for _, img := range pv.Images {
		input.Images = append(input.Images, service.ImageInput{URL: img.ImgURL, SortOrder: img.SortOrder})
	}
	for _, b := range pv.DetailBlocks {
		input.Blocks = append(input.Blocks, service.BlockInput{
			BlockType:  domain.BlockType(b.BlockType),
			Content:    b.Content,
			ImageURL:   b.ImgURL,
			BlockOrder: b.BlockOrder,
		})
	}
	return input
}

// ProductFromAggregate builds the detail view.
func ProductFromAggregate(agg *domain.ProductAggregate) ProductResponse {
	p := agg.Product
	price := p.Price
	sample := p.SampleAvailable

	images := make([]ImageDTO, 0, len(agg.Images))
	for _, img := range agg.Images {
		images = append(images, ImageDTO{ID: img.ID, ImgURL: img.URL, SortOrder: img.SortOrder})
	}
	blocks := make([]DetailBlockDTO, 0, len(agg.Blocks))
	for _, b := range agg.Blocks {
		blocks = append(blocks, DetailBlockDTO{
			ID:         b.ID,
			BlockType:  string(b.BlockType),
			Content:    b.Content,
			ImgURL:     b.ImageURL,
			BlockOrder: b.BlockOrder,
		})
	}

	return ProductResponse{
		ProductID: p.ID,
		ProdValue: ProdValue{
			ProductName:  p.Name,
			Category:     &CategoryDTO{ID: agg.Category.ID, Name: agg.Category.Name},
			Price:        &price,
			IsSmplAva:    &sample,
			Memo:         p.Memo,
			Description:  p.Description,
			Images:       images,
			DetailBlocks: blocks,
		},
		StockOptions: StockOptionsFromDomain(agg.Variants),
	}
}

// StockOptionsFromDomain converts variants.
func StockOptionsFromDomain(variants []domain.Variant) []StockOption {
	out := make([]StockOption, 0, len(variants))
	for _, v := range variants {
		out = append(out, StockOption{ID: v.ID, Color: v.Color, Size: v.Size, Stock: v.Stock})
	}
	return out
}
