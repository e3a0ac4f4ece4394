package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"forumCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type ForumRepositoryImpl struct {
	db *sqlx.DB
}

type CreateForumRequest struct {
	Title       string
	Description string
	Username    string
	Image       *string
}

const forumColumns = `id, title, description, username, user_id, image, created_at`

func NewForumRepository(db *sqlx.DB) *ForumRepositoryImpl {
	return &ForumRepositoryImpl{db: db}
}

func (r *ForumRepositoryImpl) Create(ctx context.Context, forum *models.Forum) error {
	if forum.CreatedAt.IsZero() {
		forum.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO forums (title, description, username, user_id, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		forum.Title, forum.Description, forum.Username, forum.UserID, forum.Image, forum.CreatedAt,
	).Scan(&forum.ID)
	if err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}

	return nil
}

func (r *ForumRepositoryImpl) GetByID(ctx context.Context, forumID int64) (*models.Forum, error) {
	query := `SELECT ` + forumColumns + ` FROM forums WHERE id = $1`

	var forum models.Forum
	err := r.db.GetContext(ctx, &forum, query, forumID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post with ID %d: %w", forumID, ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching post: %w", err)
	}

	return &forum, nil
}

// GetAll returns posts newest first. A limit of zero returns every post.
func (r *ForumRepositoryImpl) GetAll(ctx context.Context, limit, offset int) ([]models.Forum, error) {
	forums := []models.Forum{}

	query := `SELECT ` + forumColumns + ` FROM forums ORDER BY created_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	if err := r.db.SelectContext(ctx, &forums, query, args...); err != nil {
		return nil, fmt.Errorf("error fetching posts: %w", err)
	}

	return forums, nil
}

func (r *ForumRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM forums`); err != nil {
		return 0, fmt.Errorf("error counting posts: %w", err)
	}
	return count, nil
}

// Delete removes the post with its comments and likes in one transaction.
func (r *ForumRepositoryImpl) Delete(ctx context.Context, forumID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, forumID); err != nil {
		return fmt.Errorf("error deleting comments: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE post_id = $1`, forumID); err != nil {
		return fmt.Errorf("error deleting likes: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM forums WHERE id = $1`, forumID)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}

	if err := rowsAffected(result); err != nil {
		return fmt.Errorf("post with ID %d: %w", forumID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing post deletion: %w", err)
	}

	return nil
}
