package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/storage"
	apperrors "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/errors"
)

// MaxUploadSize is the largest accepted image upload, 5 MiB.
const MaxUploadSize = 5 << 20

// allowedImageTypes maps accepted content types to their file extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadInput holds the parameters for uploading a product image.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult is the outcome of a successful image upload.
type UploadResult struct {
	Key      string `json:"key"`
	ImageURL string `json:"image_url"`
}

// UploadService validates and stores product images.
type UploadService struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(store storage.Storage, logger *slog.Logger) *UploadService {
	return &UploadService{
		storage: store,
		logger:  logger,
	}
}

// Upload validates the image and hands it to the storage driver. Files are
// keyed by a fresh UUID with the extension derived from the content type,
// never from the client-supplied name.
func (s *UploadService) Upload(ctx context.Context, input *UploadInput) (*UploadResult, error) {
	ext, ok := allowedImageTypes[input.ContentType]
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("content type %q is not allowed", input.ContentType))
	}
	if input.Size <= 0 {
		return nil, apperrors.InvalidInput("file size must be greater than zero")
	}
	if input.Size > MaxUploadSize {
		return nil, apperrors.InvalidInput(fmt.Sprintf("file size %d exceeds maximum allowed size of %d bytes", input.Size, MaxUploadSize))
	}

	key := uuid.New().String() + ext

	result, err := s.storage.Upload(ctx, &storage.UploadInput{
		Key:         key,
		ContentType: input.ContentType,
		Size:        input.Size,
		Data:        io.LimitReader(input.Data, MaxUploadSize),
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	s.logger.InfoContext(ctx, "image uploaded",
		slog.String("key", result.Key),
		slog.String("content_type", input.ContentType),
		slog.Int64("size", input.Size),
		slog.String("original_name", input.FileName),
	)

	return &UploadResult{
		Key:      result.Key,
		ImageURL: result.URL,
	}, nil
}
