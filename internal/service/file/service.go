package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type FileService interface {
	// UploadLeaveAttachment stores a leave attachment and returns its storage key.
	UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, key string) error
	GetFileURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
	clock   calendar.Clock
}

func NewFileService(storage storage.FileStorage, clock calendar.Clock) FileService {
	return &fileServiceImpl{
		storage: storage,
		clock:   clock,
	}
}

// UploadLeaveAttachment uploads under leave/<userID>/<uuid>-<unix><ext>.
func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	newFilename := fmt.Sprintf("%s-%d%s", uuid.New().String(), s.clock.Now().Unix(), ext)
	key := path.Join("leave", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, key, contentTypeOf(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, key, expiry)
}

func (s *fileServiceImpl) Exists(ctx context.Context, key string) (bool, error) {
	return s.storage.Exists(ctx, key)
}

func contentTypeOf(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
