package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"forumCPT/internal/config"
	"forumCPT/internal/repository"
	"forumCPT/internal/storage"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Forum        ForumService
	Notification NotificationService
	Stats        StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:         NewAuthService(rep.User, storage, cfg),
		User:         NewUserService(rep.User, storage, cfg),
		Forum:        NewForumService(rep, storage, cfg),
		Notification: NewNotificationService(rep.Notification),
		Stats:        NewStatsService(rep.Stats),
	}
}

// storeUpload validates an upload and saves it. Images wider or taller than
// maxEdge are thumbnailed first; maxEdge == 0 stores the bytes as received.
func storeUpload(ctx context.Context, store storage.Storage, cfg *config.Config, prefix string, upload *storage.Upload, maxEdge uint) (string, error) {
	if err := storage.CheckImage(upload, cfg.Storage.MaxUploadSize); err != nil {
		return "", err
	}

	reader, size := upload.Reader, upload.Size
	if maxEdge > 0 {
		data, err := io.ReadAll(upload.Reader)
		if err != nil {
			return "", fmt.Errorf("error reading upload: %w", err)
		}

		data, err = storage.ResizeImage(data, maxEdge)
		if err != nil {
			return "", err
		}
		reader, size = bytes.NewReader(data), int64(len(data))
	}

	path, err := store.UploadImage(ctx, prefix, upload.FileName, reader, size)
	if err != nil {
		return "", fmt.Errorf("error uploading file: %w", err)
	}
	return path, nil
}
