package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/flowershop/internal/domain/model"
)

type flowerRepository struct {
	storage *Storage
}

const flowerColumns = `id, name, price, type, category, img_link`

func (r *flowerRepository) GetByName(ctx context.Context, name string) (*model.Flower, error) {
	const query = `SELECT ` + flowerColumns + ` FROM flowers WHERE name=$1`
	var f model.Flower
	err := r.storage.pool.QueryRow(ctx, query, name).Scan(&f.ID, &f.Name, &f.Price, &f.Type, &f.Category, &f.ImgLink)
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *flowerRepository) List(ctx context.Context, category *model.FlowerCategory) ([]model.Flower, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category == nil {
		rows, err = r.storage.pool.Query(ctx, `SELECT `+flowerColumns+` FROM flowers ORDER BY id`)
	} else {
		rows, err = r.storage.pool.Query(ctx, `SELECT `+flowerColumns+` FROM flowers WHERE category=$1 ORDER BY id`, *category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Flower, 0)
	for rows.Next() {
		var f model.Flower
		if err := rows.Scan(&f.ID, &f.Name, &f.Price, &f.Type, &f.Category, &f.ImgLink); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
