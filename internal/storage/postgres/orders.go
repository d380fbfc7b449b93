package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderSelect = `SELECT o.id, o.user_id, o.status, o.quantity, o.amount, o.created_at, o.updated_at,
                            f.id, f.name, f.price, f.type, f.category, f.img_link
                     FROM orders o JOIN flowers f ON f.id = o.flower_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Status, &o.Quantity, &o.Amount, &o.CreatedAt, &o.UpdatedAt,
		&o.Flower.ID, &o.Flower.Name, &o.Flower.Price, &o.Flower.Type, &o.Flower.Category, &o.Flower.ImgLink,
	)
	return o, err
}

func (r *orderRepository) Create(ctx context.Context, userID, flowerID int64, quantity int, amount decimal.Decimal) (*model.Order, error) {
	const query = `INSERT INTO orders (user_id, flower_id, status, quantity, amount)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at, updated_at`
	order := model.Order{
		UserID:   userID,
		Flower:   model.Flower{ID: flowerID},
		Status:   model.OrderStatusPending,
		Quantity: quantity,
		Amount:   amount,
	}
	err := r.storage.pool.QueryRow(ctx, query, userID, flowerID, model.OrderStatusPending, quantity, amount).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) GetByFlower(ctx context.Context, userID, flowerID int64) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, orderSelect+` WHERE o.user_id=$1 AND o.flower_id=$2`, userID, flowerID))
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, orderSelect+` WHERE o.user_id=$1 AND o.id=$2`, userID, orderID))
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, orderSelect+` WHERE o.user_id=$1 ORDER BY o.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Update(ctx context.Context, order model.Order) error {
	const query = `UPDATE orders SET status=$1, quantity=$2, amount=$3, updated_at=NOW()
                   WHERE id=$4 AND user_id=$5`
	tag, err := r.storage.pool.Exec(ctx, query, order.Status, order.Quantity, order.Amount, order.ID, order.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, userID, orderID int64) error {
	const query = `DELETE FROM orders WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
