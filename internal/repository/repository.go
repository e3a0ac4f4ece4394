package repository

import (
	"context"
	"errors"

	"forumCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, userID int64, req UpdateUserRequest) error
	DeleteUser(ctx context.Context, userID int64) ([]string, error)
	UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string) error
}

type ForumRepository interface {
	Create(ctx context.Context, forum *models.Forum) error
	GetByID(ctx context.Context, forumID int64) (*models.Forum, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Forum, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, forumID int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
	Delete(ctx context.Context, postID, commentID int64) error
}

type LikeRepository interface {
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, userID, postID int64) error
	CountByPostID(ctx context.Context, postID int64) (int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByUserID(ctx context.Context, userID int64) ([]models.Notification, error)
	Delete(ctx context.Context, notificationID int64) error
	MarkAsRead(ctx context.Context, notificationID int64) error
}

type StatsRepository interface {
	CountRows(ctx context.Context) (*models.Stats, error)
}

type Repository struct {
	User         UserRepository
	Forum        ForumRepository
	Comment      CommentRepository
	Like         LikeRepository
	Notification NotificationRepository
	Stats        StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:         NewUserRepository(db),
		Forum:        NewForumRepository(db),
		Comment:      NewCommentRepository(db),
		Like:         NewLikeRepository(db),
		Notification: NewNotificationRepository(db),
		Stats:        NewStatsRepository(db),
	}
}

// rowsAffected maps a zero-row result to ErrNotFound.
func rowsAffected(result interface{ RowsAffected() (int64, error) }) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
