package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/live-commerce/internal/domain"
)

// CategoryProductCount pairs a category with its product total.
type CategoryProductCount struct {
	CategoryID   string
	CategoryName string
	ProductCount int64
}

// ProductRepository defines persistence access for catalog items.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Product, int64, error)
	ListActiveByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Product, int64, error)
	CountBySeller(ctx context.Context, sellerID string) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	CountGroupedByCategory(ctx context.Context) ([]CategoryProductCount, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, name, description, price, image_url, category_id, seller_id, stock, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.CategoryID,
		&p.SellerID,
		&p.Stock,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, description, price, image_url, category_id, seller_id, stock, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.CategoryID,
		product.SellerID,
		product.Stock,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products
        SET name=$1, description=$2, price=$3, image_url=$4, category_id=$5,
            stock=$6, is_active=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.CategoryID,
		product.Stock,
		product.IsActive,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id))
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Product, int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE seller_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		sellerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) ListActiveByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Product, int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products
         WHERE category_id=$1 AND is_active
         ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		categoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id=$1 AND is_active`,
		categoryID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE seller_id=$1`, sellerID).Scan(&total)
	return total, err
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id=$1`, categoryID).Scan(&total)
	return total, err
}

func (r *productRepository) CountGroupedByCategory(ctx context.Context) ([]CategoryProductCount, error) {
	const query = `
        SELECT c.id, c.name, COUNT(p.id)
        FROM product_categories c
        JOIN products p ON p.category_id = c.id
        GROUP BY c.id, c.name
        ORDER BY COUNT(p.id) DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]CategoryProductCount, 0)
	for rows.Next() {
		var c CategoryProductCount
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.ProductCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
