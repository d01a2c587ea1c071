// Package media stores uploaded video files on the local filesystem and maps
// them to the public /uploads/<file> paths served by the HTTP gateway.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/screenlab/screener-api/pkg/errors"
)

// PublicPrefix is the URL prefix under which stored media is served
const PublicPrefix = "/uploads"

// Store defines the interface for media storage operations
type Store interface {
	// SaveUpload persists an uploaded file and returns its public path
	SaveUpload(ctx context.Context, originalName string, data io.Reader) (string, error)

	// Open retrieves a stored file by its public path
	Open(ctx context.Context, publicPath string) (io.ReadCloser, error)

	// LocalPath resolves a public path to a filesystem path
	LocalPath(publicPath string) (string, error)

	// Remove deletes a stored file by its public path
	Remove(ctx context.Context, publicPath string) error
}

// LocalStore implements Store using the local filesystem
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a local filesystem media store rooted at basePath
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	return &LocalStore{basePath: absPath}, nil
}

// BasePath returns the filesystem root of the store
func (s *LocalStore) BasePath() string {
	return s.basePath
}

// SaveUpload writes the uploaded data under a fresh UUID filename, keeping
// only the original extension. The stored name never derives from the client
// supplied filename, so path traversal in uploads is a non-issue.
func (s *LocalStore) SaveUpload(ctx context.Context, originalName string, data io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	filename := uuid.New().String() + ext
	filePath := filepath.Join(s.basePath, filename)

	file, err := os.Create(filePath)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeStorage, "failed to create media file")
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(filePath)
		return "", apperrors.Wrap(err, apperrors.ErrCodeStorage, "failed to write media file")
	}

	return path.Join(PublicPrefix, filename), nil
}

// Open retrieves a stored file by its public path
func (s *LocalStore) Open(ctx context.Context, publicPath string) (io.ReadCloser, error) {
	filePath, err := s.LocalPath(publicPath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound("media file", publicPath)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStorage, "failed to open media file")
	}
	return file, nil
}

// LocalPath resolves a public "/uploads/<file>" path to a filesystem path,
// rejecting anything that would escape the store root.
func (s *LocalStore) LocalPath(publicPath string) (string, error) {
	name := strings.TrimPrefix(publicPath, PublicPrefix+"/")
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." {
		return "", apperrors.Validation("path", "not a stored media path")
	}
	return filepath.Join(s.basePath, name), nil
}

// Remove deletes a stored file. A missing file is not an error, the store
// converges to the same state either way.
func (s *LocalStore) Remove(ctx context.Context, publicPath string) error {
	filePath, err := s.LocalPath(publicPath)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apperrors.Wrap(err, apperrors.ErrCodeStorage, "failed to delete media file")
	}
	return nil
}
