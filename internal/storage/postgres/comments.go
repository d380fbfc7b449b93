package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/flowershop/internal/domain/model"
)

type commentRepository struct {
	storage *Storage
}

// Create inserts the comment and reads back the author's username in the same transaction.
func (r *commentRepository) Create(ctx context.Context, userID int64, text string) (*model.Comment, error) {
	comment := model.Comment{UserID: userID, Text: text}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO comments (user_id, text) VALUES ($1, $2) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insert, userID, text).Scan(&comment.ID, &comment.CreatedAt); err != nil {
			return err
		}
		const author = `SELECT username FROM users WHERE id=$1`
		return tx.QueryRow(ctx, author, userID).Scan(&comment.Username)
	})
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *commentRepository) List(ctx context.Context) ([]model.Comment, error) {
	const query = `SELECT c.id, c.user_id, u.username, c.text, c.created_at
                   FROM comments c JOIN users u ON u.id = c.user_id
                   ORDER BY c.created_at, c.id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.Username, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
