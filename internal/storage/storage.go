package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"forumCPT/internal/config"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLen = 512

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Storage persists uploaded images and returns the path stored on the owning row.
type Storage interface {
	UploadImage(ctx context.Context, prefix, fileName string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, path string) error
}

// Upload is a file received with a request.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CheckImage rejects uploads over maxSize or whose content is not an allowed
// image type. The type is detected from the leading bytes; the declared type
// is replaced by it and the file name gets the matching extension.
func CheckImage(upload *Upload, maxSize int64) error {
	if maxSize > 0 && upload.Size > maxSize {
		return fmt.Errorf("%s is %d bytes: %w", upload.FileName, upload.Size, ErrFileTooLarge)
	}
	if upload.Reader == nil {
		return fmt.Errorf("%s is empty: %w", upload.FileName, ErrUnsupportedType)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error reading upload: %w", err)
	}
	head = head[:n]
	upload.Reader = io.MultiReader(bytes.NewReader(head), upload.Reader)

	detected := mimetype.Detect(head)
	contentType := detected.String()
	if !allowedImageTypes[contentType] {
		return fmt.Errorf("%s (%s): %w", upload.FileName, contentType, ErrUnsupportedType)
	}

	upload.ContentType = contentType
	ext := filepath.Ext(upload.FileName)
	if mime.TypeByExtension(strings.ToLower(ext)) != contentType {
		upload.FileName = strings.TrimSuffix(upload.FileName, ext) + detected.Extension()
	}

	return nil
}

// New builds the backend selected by cfg.Storage.Backend.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		return NewLocalStorage(cfg.Storage.UploadDir)
	case "minio":
		return NewMinIOClient(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
