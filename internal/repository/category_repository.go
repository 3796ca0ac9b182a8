package repository

import (
	"context"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
)

// CategoryRepository reads the product category tree.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int) (*domain.Category, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, category *domain.Category) error
}

type categoryRepository struct {
	pool DBTX
}

// NewCategoryRepository returns repository implementation.
func NewCategoryRepository(pool DBTX) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `SELECT id, name, parent_id FROM categories ORDER BY id`
	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.ParentID); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	const query = `SELECT id, name, parent_id FROM categories WHERE id=$1`
	var category domain.Category
	if err := conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(&category.ID, &category.Name, &category.ParentID); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	return count, err
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `INSERT INTO categories (name, parent_id) VALUES ($1, $2) RETURNING id`
	return mapWriteError(conn(ctx, r.pool).QueryRow(ctx, query, category.Name, category.ParentID).Scan(&category.ID))
}
