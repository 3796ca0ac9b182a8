package domain

import "time"

// DefaultOption is stored when a product is created without sizes or colors.
const DefaultOption = "DEFAULT"

// Product is the aggregate root owned by a wholesaler.
type Product struct {
	ID              int64
	OwnerID         string
	CategoryID      int
	Name            string
	Price           int
	SampleAvailable bool
	Active          bool
	Memo            string
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductImage is an image attached to a product.
type ProductImage struct {
	ID        int64
	ProductID int64
	URL       string
	SortOrder int
}

// BlockType enumerates content block kinds.
type BlockType string

const (
	BlockTypeText  BlockType = "TEXT"
	BlockTypeImage BlockType = "IMAGE"
	BlockTypeVideo BlockType = "VIDEO"
)

// DetailBlock is a rich-content block rendered on the product page.
type DetailBlock struct {
	ID         int64
	ProductID  int64
	BlockType  BlockType
	Content    string
	ImageURL   string
	BlockOrder int
}

// ProductAggregate bundles a product with its dependents.
type ProductAggregate struct {
	Product  Product
	Category Category
	Images   []ProductImage
	Blocks   []DetailBlock
	Variants []Variant
}
