package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparkbazaar/sparkbazaar/internal/shared"
)

// Repository loads admin accounts.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanOne(ctx, `SELECT id, email, name, password_hash, is_active, created_at FROM admin_users WHERE email = $1`, email)
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.scanOne(ctx, `SELECT id, email, name, password_hash, is_active, created_at FROM admin_users WHERE id = $1`, id)
}

func (r *repository) scanOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	return &u, nil
}
