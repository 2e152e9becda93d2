package repository

import (
	"context"

	"github.com/Domenick1991/itemshare/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]domain.Comment, error)
}

type PGCommentRepository struct {
	db DB
}

func NewCommentRepository(db DB) CommentRepository {
	return &PGCommentRepository{db: db}
}

func (r *PGCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.QueryRow(ctx, `INSERT INTO comments (text, item_id, author_id)
		VALUES ($1, $2, $3) RETURNING id, created_at`,
		comment.Text, comment.ItemID, comment.AuthorID).
		Scan(&comment.ID, &comment.CreatedAt)
}

func (r *PGCommentRepository) ListByItem(ctx context.Context, itemID int64) ([]domain.Comment, error) {
	rows, err := r.db.Query(ctx, `SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created_at
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.item_id=$1 ORDER BY c.created_at`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

var _ CommentRepository = (*PGCommentRepository)(nil)
