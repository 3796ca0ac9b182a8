package repository

import (
	"context"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
)

// ProductRepository persists products together with their images and
// detail blocks.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	UpdateActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error

	AddImage(ctx context.Context, image *domain.ProductImage) error
	ListImages(ctx context.Context, productID int64) ([]domain.ProductImage, error)
	DeleteImages(ctx context.Context, productID int64) error

	AddBlock(ctx context.Context, block *domain.DetailBlock) error
	ListBlocks(ctx context.Context, productID int64) ([]domain.DetailBlock, error)
	DeleteBlocks(ctx context.Context, productID int64) error
}

type productRepository struct {
	pool DBTX
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool DBTX) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (owner_uuid, category_id, name, price, sample_available, is_active, memo, description)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		product.OwnerID,
		product.CategoryID,
		product.Name,
		product.Price,
		product.SampleAvailable,
		product.Active,
		product.Memo,
		product.Description,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const query = `
        SELECT id, owner_uuid, category_id, name, price, sample_available, is_active, memo, description, created_at, updated_at
        FROM products WHERE id=$1`
	var product domain.Product
	if err := conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.OwnerID,
		&product.CategoryID,
		&product.Name,
		&product.Price,
		&product.SampleAvailable,
		&product.Active,
		&product.Memo,
		&product.Description,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) UpdateActive(ctx context.Context, id int64, active bool) error {
	const query = `UPDATE products SET is_active=$2, updated_at=NOW() WHERE id=$1`
	_, err := conn(ctx, r.pool).Exec(ctx, query, id, active)
	return err
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

func (r *productRepository) AddImage(ctx context.Context, image *domain.ProductImage) error {
	const query = `
        INSERT INTO product_images (product_id, img_url, sort_order)
        VALUES ($1,$2,$3)
        RETURNING id`
	return conn(ctx, r.pool).QueryRow(ctx, query, image.ProductID, image.URL, image.SortOrder).Scan(&image.ID)
}

func (r *productRepository) ListImages(ctx context.Context, productID int64) ([]domain.ProductImage, error) {
	const query = `
        SELECT id, product_id, img_url, sort_order
        FROM product_images WHERE product_id=$1 ORDER BY sort_order, id`
	rows, err := conn(ctx, r.pool).Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.ProductImage
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.SortOrder); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *productRepository) DeleteImages(ctx context.Context, productID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM product_images WHERE product_id=$1`, productID)
	return err
}

func (r *productRepository) AddBlock(ctx context.Context, block *domain.DetailBlock) error {
	const query = `
        INSERT INTO product_detail_blocks (product_id, block_type, content, img_url, block_order)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		block.ProductID,
		block.BlockType,
		block.Content,
		block.ImageURL,
		block.BlockOrder,
	).Scan(&block.ID)
}

func (r *productRepository) ListBlocks(ctx context.Context, productID int64) ([]domain.DetailBlock, error) {
	const query = `
        SELECT id, product_id, block_type, content, img_url, block_order
        FROM product_detail_blocks WHERE product_id=$1 ORDER BY block_order, id`
	rows, err := conn(ctx, r.pool).Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.DetailBlock
	for rows.Next() {
		var b domain.DetailBlock
		if err := rows.Scan(&b.ID, &b.ProductID, &b.BlockType, &b.Content, &b.ImageURL, &b.BlockOrder); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *productRepository) DeleteBlocks(ctx context.Context, productID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM product_detail_blocks WHERE product_id=$1`, productID)
	return err
}
