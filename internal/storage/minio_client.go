package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"forumCPT/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient stores uploads as objects in a single bucket.
type MinIOClient struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinIOClient connects to cfg.Endpoint and creates the bucket if it does not exist.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("error checking MinIO bucket: %w", err)
	}
	if !exists {
		err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("error creating MinIO bucket: %w", err)
		}
	}

	return &MinIOClient{
		client:  client,
		bucket:  cfg.BucketName,
		baseURL: objectBaseURL(cfg),
	}, nil
}

func objectBaseURL(cfg config.MinIO) string {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/", scheme, cfg.Endpoint, cfg.BucketName)
}

// objectName lays objects out as <prefix>/<year>/<month>/<uuid><ext>.
func objectName(prefix, fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".jpg"
	}
	if prefix == "" {
		prefix = "images"
	}

	return fmt.Sprintf("%s/%d/%02d/%s%s", prefix, now.Year(), now.Month(), uuid.New().String(), ext)
}

// objectNameFromURL accepts either a URL returned by UploadImage or a bare object name.
func (m *MinIOClient) objectNameFromURL(path string) string {
	return strings.TrimPrefix(path, m.baseURL)
}

func (m *MinIOClient) UploadImage(ctx context.Context, prefix, fileName string, file io.Reader, size int64) (string, error) {
	now := time.Now()
	name := objectName(prefix, fileName, now)

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, name, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       now.UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("error uploading to MinIO: %w", err)
	}

	return m.baseURL + name, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, path string) error {
	err := m.client.RemoveObject(ctx, m.bucket, m.objectNameFromURL(path), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("error deleting from MinIO: %w", err)
	}
	return nil
}
