package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/live-commerce/internal/domain"
)

// UserListFilters narrows admin user listings.
type UserListFilters struct {
	Search string
	Role   *domain.Role
	Limit  int
	Offset int
}

// RoleCounts aggregates user totals for the admin dashboard.
type RoleCounts struct {
	Total       int64
	Users       int64
	Sellers     int64
	Admins      int64
	SuperAdmins int64
	Recent      int64
}

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filters UserListFilters) ([]domain.User, int64, error)
	CountByRole(ctx context.Context, recentSince time.Time) (RoleCounts, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, password_hash, full_name, image_url, mobile_number, address, role, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.ImageURL,
		&user.MobileNumber,
		&user.Address,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, email, password_hash, full_name, image_url, mobile_number, address, role)
        VALUES ($1, LOWER($2), $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.ImageURL,
		user.MobileNumber,
		user.Address,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users
        SET email=LOWER($1), password_hash=$2, full_name=$3, image_url=$4,
            mobile_number=$5, address=$6, role=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.ImageURL,
		user.MobileNumber,
		user.Address,
		user.Role,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=LOWER($1)`, email))
}

func (r *userRepository) List(ctx context.Context, filters UserListFilters) ([]domain.User, int64, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users
        WHERE ($1 = '' OR full_name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
          AND ($2::TEXT IS NULL OR role = $2)
        ORDER BY created_at DESC
        LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, filters.Search, filters.Role, filters.Limit, filters.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	const countQuery = `
        SELECT COUNT(*)
        FROM users
        WHERE ($1 = '' OR full_name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
          AND ($2::TEXT IS NULL OR role = $2)`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, filters.Search, filters.Role).Scan(&total); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) CountByRole(ctx context.Context, recentSince time.Time) (RoleCounts, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE role = 'user'),
               COUNT(*) FILTER (WHERE role = 'seller'),
               COUNT(*) FILTER (WHERE role = 'admin'),
               COUNT(*) FILTER (WHERE role = 'superadmin'),
               COUNT(*) FILTER (WHERE created_at >= $1)
        FROM users`

	var counts RoleCounts
	err := r.pool.QueryRow(ctx, query, recentSince).Scan(
		&counts.Total,
		&counts.Users,
		&counts.Sellers,
		&counts.Admins,
		&counts.SuperAdmins,
		&counts.Recent,
	)
	return counts, err
}
