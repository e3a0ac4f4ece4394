package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage keeps uploads in a directory on disk.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates dir if it does not exist.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// UploadImage writes the file as <unix nanos><ext>. The prefix only namespaces
// MinIO objects; local files share one directory.
func (s *LocalStorage) UploadImage(ctx context.Context, prefix, fileName string, file io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("error writing file: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("error writing file: %w", err)
	}

	return filepath.ToSlash(path), nil
}

// DeleteImage removes a file previously returned by UploadImage.
// Paths outside the upload directory are refused; missing files are not an error.
func (s *LocalStorage) DeleteImage(ctx context.Context, path string) error {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if filepath.Dir(cleaned) != filepath.Clean(s.dir) {
		return fmt.Errorf("path %q is outside the upload directory", path)
	}

	if err := os.Remove(cleaned); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error deleting file: %w", err)
	}
	return nil
}
