package repository

import (
	"context"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLoginID(ctx context.Context, loginID string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	pool DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool DBTX) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (uuid, login_id, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	err := conn(ctx, r.pool).QueryRow(ctx, query,
		user.ID,
		user.LoginID,
		user.PasswordHash,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return mapWriteError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT uuid, login_id, password_hash, role, created_at, updated_at
        FROM users WHERE uuid=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByLoginID(ctx context.Context, loginID string) (*domain.User, error) {
	const query = `
        SELECT uuid, login_id, password_hash, role, created_at, updated_at
        FROM users WHERE login_id=$1`
	return r.fetchSingle(ctx, query, loginID)
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := conn(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.LoginID,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
