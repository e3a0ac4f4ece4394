package repository

import (
	"context"
	"fmt"
	"time"

	"forumCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var count int

	query := `SELECT COUNT(*) FROM likes WHERE user_id = $1 AND post_id = $2`

	if err := r.db.GetContext(ctx, &count, query, userID, postID); err != nil {
		return false, fmt.Errorf("error checking like: %w", err)
	}

	return count > 0, nil
}

// Create inserts unconditionally; callers check Exists first.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO likes (user_id, post_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query, like.UserID, like.PostID, like.CreatedAt).Scan(&like.ID)
	if err != nil {
		return fmt.Errorf("error liking post: %w", err)
	}

	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return fmt.Errorf("error removing like: %w", err)
	}

	if err := rowsAffected(result); err != nil {
		return fmt.Errorf("like on post %d: %w", postID, err)
	}

	return nil
}

func (r *likeRepository) CountByPostID(ctx context.Context, postID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID); err != nil {
		return 0, fmt.Errorf("error counting likes: %w", err)
	}
	return count, nil
}
