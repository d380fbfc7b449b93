package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/domain/repository"
	pkgAuth "github.com/polkiloo/flowershop/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and session management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates an inactive regular account and returns its id.
func (u *AuthUseCase) Register(ctx context.Context, username, email, password string) (int64, error) {
	usr, err := u.create(ctx, username, email, password, false)
	if err != nil {
		return 0, err
	}
	return usr.ID, nil
}

// Login checks credentials and starts a new session, replacing any previous one.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domainErrors.ErrUnauthorized
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrUnauthorized
		}
		return "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return "", domainErrors.ErrUnauthorized
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return "", err
	}

	if err := u.users.SetToken(ctx, usr.ID, token); err != nil {
		return "", err
	}

	return token, nil
}

// Logout revokes the session identified by token.
func (u *AuthUseCase) Logout(ctx context.Context, token string) error {
	if _, err := u.tokens.ParseToken(token); err != nil {
		return domainErrors.ErrUnauthorized
	}

	if err := u.users.ClearToken(ctx, token); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrUnauthorized
		}
		return err
	}
	return nil
}

// Resolve maps a session token to the user currently holding it.
func (u *AuthUseCase) Resolve(ctx context.Context, token string) (*model.User, error) {
	userID, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrUnauthorized
	}

	usr, err := u.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}

	if usr.ID != userID {
		return nil, domainErrors.ErrUnauthorized
	}
	return usr, nil
}

// EnsureAdmin creates an active superuser unless the username is already taken.
// It reports whether a new account was created.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	_, err := u.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return false, err
	}

	if _, err := u.create(ctx, username, email, password, true); err != nil {
		return false, err
	}
	return true, nil
}

func (u *AuthUseCase) create(ctx context.Context, username, email, password string, admin bool) (*model.User, error) {
	input := registration{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	return u.users.Create(ctx, repository.NewUser{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     admin,
		IsSuperuser:  admin,
	})
}
