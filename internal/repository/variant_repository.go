package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
)

// VariantSort enumerates listing sort keys.
type VariantSort string

const (
	VariantSortCreatedAt   VariantSort = "createdAt"
	VariantSortProductName VariantSort = "productName"
)

// VariantFilter captures catalog search parameters. OwnerID is mandatory.
type VariantFilter struct {
	OwnerID     string
	CategoryIDs []int
	Active      *bool
	Keyword     string
	SortBy      VariantSort
	Ascending   bool
	Limit       int
	Offset      int
}

// VariantRepository encapsulates variant persistence.
type VariantRepository interface {
	Create(ctx context.Context, variant *domain.Variant) error
	GetByID(ctx context.Context, id int64) (*domain.Variant, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Variant, error)
	UpdateStock(ctx context.Context, id int64, stock int) error
	DeleteByProduct(ctx context.Context, productID int64) error
	ListWithFilter(ctx context.Context, filter VariantFilter) ([]domain.VariantListing, int64, error)
}

type variantRepository struct {
	pool DBTX
}

// NewVariantRepository instantiates repository.
func NewVariantRepository(pool DBTX) VariantRepository {
	return &variantRepository{pool: pool}
}

func (r *variantRepository) Create(ctx context.Context, variant *domain.Variant) error {
	const query = `
        INSERT INTO product_variants (product_id, size, color, stock)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		variant.ProductID,
		variant.Size,
		variant.Color,
		variant.Stock,
	).Scan(&variant.ID)
	return mapWriteError(err)
}

func (r *variantRepository) GetByID(ctx context.Context, id int64) (*domain.Variant, error) {
	const query = `SELECT id, product_id, size, color, stock FROM product_variants WHERE id=$1`
	var v domain.Variant
	if err := conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.Stock); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *variantRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Variant, error) {
	const query = `
        SELECT id, product_id, size, color, stock
        FROM product_variants WHERE product_id=$1 ORDER BY id`
	rows, err := conn(ctx, r.pool).Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []domain.Variant
	for rows.Next() {
		var v domain.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.Stock); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (r *variantRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `UPDATE product_variants SET stock=$2 WHERE id=$1`, id, stock)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *variantRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM product_variants WHERE product_id=$1`, productID)
	return err
}

func (r *variantRepository) ListWithFilter(ctx context.Context, filter VariantFilter) ([]domain.VariantListing, int64, error) {
	from := `FROM product_variants v
             JOIN products p ON p.id = v.product_id
             JOIN categories c ON c.id = p.category_id`
	args := []any{filter.OwnerID}
	clauses := []string{"p.owner_uuid=$1"}

	if len(filter.CategoryIDs) > 0 {
		placeholders := make([]string, len(filter.CategoryIDs))
		for i, id := range filter.CategoryIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("p.category_id IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("p.is_active=$%d", len(args)))
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		args = append(args, "%"+strings.ToLower(keyword)+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(p.name) LIKE $%d", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", from, where)
	if err := conn(ctx, r.pool).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT v.id, v.product_id, v.size, v.color, v.stock,
                    p.name, p.price, p.is_active, c.name, p.created_at
             %s WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		from, where, orderClause(filter.SortBy, filter.Ascending), limit, offset)

	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.VariantListing
	for rows.Next() {
		var item domain.VariantListing
		if err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.Size,
			&item.Color,
			&item.Stock,
			&item.ProductName,
			&item.Price,
			&item.Active,
			&item.CategoryName,
			&item.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, item)
	}
	return result, total, rows.Err()
}

// orderClause maps a sort key onto a fixed column list; user input never
// reaches the SQL text.
func orderClause(sortBy VariantSort, ascending bool) string {
	column := "p.created_at"
	if sortBy == VariantSortProductName {
		column = "p.name"
	}
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s, v.id %s", column, direction, direction)
}
