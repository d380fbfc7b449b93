package usecase

import (
	"context"
	"log/slog"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/domain/repository"
)

// CatalogUseCase is the read-only view of the flower catalog.
type CatalogUseCase struct {
	flowers repository.FlowerRepository
	cache   repository.FlowerCache
	logger  *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase. cache may be nil.
func NewCatalogUseCase(flowers repository.FlowerRepository, cache repository.FlowerCache, logger *slog.Logger) *CatalogUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogUseCase{flowers: flowers, cache: cache, logger: logger}
}

// GetByName returns the flower with exactly that name, case and whitespace
// included. The entry may come from the cache and carry a price up to one
// cache lifetime old.
func (u *CatalogUseCase) GetByName(ctx context.Context, name string) (*model.Flower, error) {
	if name == "" {
		return nil, domainErrors.ErrNotFound
	}

	if u.cache != nil {
		if flower, ok := u.cache.Get(ctx, name); ok {
			return flower, nil
		}
	}
	return u.Current(ctx, name)
}

// Current reads the flower from the catalog store, bypassing the cache, and
// refreshes the cached entry.
func (u *CatalogUseCase) Current(ctx context.Context, name string) (*model.Flower, error) {
	if name == "" {
		return nil, domainErrors.ErrNotFound
	}

	flower, err := u.flowers.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, *flower); err != nil {
			u.logger.Warn("catalog cache write failed", slog.String("flower", name), slog.String("error", err.Error()))
		}
	}
	return flower, nil
}

// List returns the whole catalog, or the flowers of one category when it is set.
func (u *CatalogUseCase) List(ctx context.Context, category *model.FlowerCategory) ([]model.Flower, error) {
	return u.flowers.List(ctx, category)
}
