package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"forumCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *sqlx.DB
}

type CreateUserRequest struct {
	Name         string
	Email        string
	Username     string
	Password     string
	ProfilePhoto *string
}

// UpdateUserRequest holds the columns to change; nil fields are left untouched.
type UpdateUserRequest struct {
	Name         *string
	Email        *string
	Username     *string
	PasswordHash *string
	Phone        *string
	ProfilePhoto *string
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Username == nil &&
		r.PasswordHash == nil && r.Phone == nil && r.ProfilePhoto == nil
}

const userColumns = `id, name, email, username, password, profile_photo, phone, refresh_token, created_at`

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (name, email, username, password, profile_photo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		user.Name, user.Email, user.Username, user.PasswordHash, user.ProfilePhoto, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}

	return users, nil
}

func (r *userRepository) getUser(ctx context.Context, column string, value interface{}) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	err := r.db.GetContext(ctx, &user, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with %s %v: %w", column, value, ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return r.getUser(ctx, "id", userID)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "email", email)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, "username", username)
}

func (r *userRepository) UpdateUser(ctx context.Context, userID int64, req UpdateUserRequest) error {
	var (
		fields []string
		values []interface{}
	)

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		values = append(values, *value)
		fields = append(fields, fmt.Sprintf("%s = $%d", column, len(values)))
	}

	add("name", req.Name)
	add("email", req.Email)
	add("username", req.Username)
	add("password", req.PasswordHash)
	add("phone", req.Phone)
	add("profile_photo", req.ProfilePhoto)

	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	values = append(values, userID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(fields, ", "), len(values))

	result, err := r.db.ExecContext(ctx, query, values...)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}

	if err := rowsAffected(result); err != nil {
		return fmt.Errorf("user with ID %d: %w", userID, err)
	}

	return nil
}

// DeleteUser removes the user together with their posts, comments and likes,
// including comments and likes left by others on those posts. It returns the
// image paths of the removed posts so the caller can delete the files.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	images := []string{}
	if err := tx.SelectContext(ctx, &images, `SELECT image FROM forums WHERE user_id = $1 AND image IS NOT NULL`, userID); err != nil {
		return nil, fmt.Errorf("error fetching user post images: %w", err)
	}

	cascade := []struct {
		what  string
		query string
	}{
		{"comments", `DELETE FROM comments WHERE user_id = $1 OR post_id IN (SELECT id FROM forums WHERE user_id = $1)`},
		{"likes", `DELETE FROM likes WHERE user_id = $1 OR post_id IN (SELECT id FROM forums WHERE user_id = $1)`},
		{"posts", `DELETE FROM forums WHERE user_id = $1`},
	}

	for _, step := range cascade {
		if _, err := tx.ExecContext(ctx, step.query, userID); err != nil {
			return nil, fmt.Errorf("error deleting user %s: %w", step.what, err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("error deleting user: %w", err)
	}

	if err := rowsAffected(result); err != nil {
		return nil, fmt.Errorf("user with ID %d: %w", userID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing user deletion: %w", err)
	}

	return images, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	query := `UPDATE users SET refresh_token = $1 WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, refreshToken, userID)
	if err != nil {
		return fmt.Errorf("error updating refresh token: %w", err)
	}

	return nil
}
