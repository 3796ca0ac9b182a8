package domain

import (
	"strings"
	"time"
)

// ForbiddenOptionSeparators are rejected in size and color lists; only the
// comma separates values.
const ForbiddenOptionSeparators = ";|/\\\t"

// HasForbiddenOptionSeparator reports whether raw uses a separator other
// than the comma.
func HasForbiddenOptionSeparator(raw string) bool {
	return strings.ContainsAny(raw, ForbiddenOptionSeparators)
}

// Variant is a (size, color) stock unit of a product. The triple
// (ProductID, Size, Color) is unique.
type Variant struct {
	ID        int64
	ProductID int64
	Size      string
	Color     string
	Stock     int
}

// VariantListing is a variant joined with its product and category for the
// catalog view.
type VariantListing struct {
	Variant
	ProductName  string
	Price        int
	Active       bool
	CategoryName string
	CreatedAt    time.Time
}
