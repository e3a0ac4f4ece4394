package service

import (
	"context"
	"strings"

	"forumCPT/internal/models"
	"forumCPT/internal/repository"
)

type NotificationService interface {
	CreateNotification(ctx context.Context, userID *int64, title, message string) (*models.Notification, error)
	GetNotifications(ctx context.Context, userID int64) ([]models.Notification, error)
	DeleteNotification(ctx context.Context, notificationID int64) error
	MarkAsRead(ctx context.Context, notificationID int64) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) CreateNotification(ctx context.Context, userID *int64, title, message string) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Title:   strings.TrimSpace(title),
		Message: strings.TrimSpace(message),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.notificationRepo.GetByUserID(ctx, userID)
}

func (s *notificationService) DeleteNotification(ctx context.Context, notificationID int64) error {
	return s.notificationRepo.Delete(ctx, notificationID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, notificationID int64) error {
	return s.notificationRepo.MarkAsRead(ctx, notificationID)
}
