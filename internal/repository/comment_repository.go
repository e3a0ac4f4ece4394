package repository

import (
	"context"
	"fmt"
	"time"

	"forumCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO comments (post_id, user_id, comment, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		comment.PostID, comment.UserID, comment.Comment, comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	comments := []models.Comment{}

	query := `SELECT id, post_id, user_id, comment, created_at FROM comments WHERE post_id = $1 ORDER BY created_at, id`

	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("error fetching comments: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, postID, commentID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND post_id = $2`, commentID, postID)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}

	if err := rowsAffected(result); err != nil {
		return fmt.Errorf("comment with ID %d: %w", commentID, err)
	}

	return nil
}
