package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/live-commerce/internal/domain"
)

// CategoryRepository defines persistence access for product categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.ProductCategory) error
	Update(ctx context.Context, category *domain.ProductCategory) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ProductCategory, error)
	GetByName(ctx context.Context, name string) (*domain.ProductCategory, error)
	List(ctx context.Context, activeOnly bool) ([]domain.ProductCategory, error)
	Count(ctx context.Context) (total, active int64, err error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a Postgres-backed implementation.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

const categoryColumns = `id, name, description, image_url, icon, is_active, sort_order, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.ProductCategory, error) {
	var c domain.ProductCategory
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.ImageURL,
		&c.Icon,
		&c.IsActive,
		&c.SortOrder,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.ProductCategory) error {
	const query = `
        INSERT INTO product_categories (name, description, image_url, icon, is_active, sort_order)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		category.Name,
		category.Description,
		category.ImageURL,
		category.Icon,
		category.IsActive,
		category.SortOrder,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.ProductCategory) error {
	const query = `
        UPDATE product_categories
        SET name=$1, description=$2, image_url=$3, icon=$4, is_active=$5, sort_order=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		category.Name,
		category.Description,
		category.ImageURL,
		category.Icon,
		category.IsActive,
		category.SortOrder,
		category.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM product_categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.ProductCategory, error) {
	return scanCategory(r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM product_categories WHERE id=$1`, id))
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.ProductCategory, error) {
	return scanCategory(r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM product_categories WHERE LOWER(name)=LOWER($1)`, name))
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]domain.ProductCategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM product_categories
         WHERE (NOT $1 OR is_active)
         ORDER BY sort_order, name`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.ProductCategory, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Count(ctx context.Context) (int64, int64, error) {
	var total, active int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM product_categories`,
	).Scan(&total, &active)
	return total, active, err
}
