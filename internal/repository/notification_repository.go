package repository

import (
	"context"
	"fmt"
	"time"

	"forumCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO notifications (user_id, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		notification.UserID, notification.Title, notification.Message, notification.IsRead, notification.CreatedAt,
	).Scan(&notification.ID)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications := []models.Notification{}

	query := `
		SELECT id, user_id, title, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, fmt.Errorf("error fetching notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) Delete(ctx context.Context, notificationID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, notificationID)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}

	if err := rowsAffected(result); err != nil {
		return fmt.Errorf("notification with ID %d: %w", notificationID, err)
	}

	return nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationID int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = $1 WHERE id = $2`, true, notificationID)
	if err != nil {
		return fmt.Errorf("error marking notification as read: %w", err)
	}

	if err := rowsAffected(result); err != nil {
		return fmt.Errorf("notification with ID %d: %w", notificationID, err)
	}

	return nil
}
