package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/domain/repository"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, username, email, password_hash, token, is_active, is_superuser, created_at`

func (r *userRepository) Create(ctx context.Context, nu repository.NewUser) (*model.User, error) {
	const query = `INSERT INTO users (username, email, password_hash, is_active, is_superuser)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at`
	u := model.User{
		Username:     nu.Username,
		Email:        nu.Email,
		PasswordHash: nu.PasswordHash,
		IsActive:     nu.IsActive,
		IsSuperuser:  nu.IsSuperuser,
	}
	err := r.storage.pool.QueryRow(ctx, query, nu.Username, nu.Email, nu.PasswordHash, nu.IsActive, nu.IsSuperuser).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

func (r *userRepository) GetByToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, domainErrors.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE token=$1`, token)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Token, &u.IsActive, &u.IsSuperuser, &u.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) SetToken(ctx context.Context, userID int64, token string) error {
	const query = `UPDATE users SET token=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, token, userID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) ClearToken(ctx context.Context, token string) error {
	if token == "" {
		return domainErrors.ErrNotFound
	}
	const query = `UPDATE users SET token='' WHERE token=$1`
	tag, err := r.storage.pool.Exec(ctx, query, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
