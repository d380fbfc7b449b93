package repository

import (
	"context"

	"github.com/polkiloo/flowershop/internal/domain/model"
)

// FlowerRepository provides read access to the catalog.
type FlowerRepository interface {
	GetByName(ctx context.Context, name string) (*model.Flower, error)
	// List returns all flowers ordered by id, or only those in category when it is set.
	List(ctx context.Context, category *model.FlowerCategory) ([]model.Flower, error)
}

// FlowerCache keeps recently resolved catalog entries.
type FlowerCache interface {
	Get(ctx context.Context, name string) (*model.Flower, bool)
	Set(ctx context.Context, flower model.Flower) error
}
