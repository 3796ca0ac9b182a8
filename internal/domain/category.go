package domain

// Category groups products. ParentID is nil for top-level categories.
type Category struct {
	ID       int
	Name     string
	ParentID *int
}
