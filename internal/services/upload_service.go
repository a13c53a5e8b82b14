package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"inkspot_backend/internal/config"
	"inkspot_backend/internal/imageprocessor"
	"inkspot_backend/internal/logger"
	"inkspot_backend/internal/services/dto"
	"inkspot_backend/internal/storage"
	"inkspot_backend/pkg/apperrors"
)

type UploadService interface {
	// UploadImage валидирует, при необходимости пережимает и сохраняет
	// изображение в пространстве имен kind. Для публичных пространств
	// возвращается постоянная ссылка, для приватных - подписанная.
	UploadImage(ctx context.Context, kind dto.UploadKind, file *multipart.FileHeader) (*dto.UploadResponse, error)
	DeleteFile(ctx context.Context, path string) error
}

type uploadService struct {
	storage   storage.Storage
	processor *imageprocessor.Processor
	cfg       *config.Config
}

func NewUploadService(store storage.Storage, processor *imageprocessor.Processor, cfg *config.Config) UploadService {
	return &uploadService{
		storage:   store,
		processor: processor,
		cfg:       cfg,
	}
}

func (s *uploadService) UploadImage(ctx context.Context, kind dto.UploadKind, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	limit := s.sizeLimit(kind)
	if file.Size > limit {
		return nil, apperrors.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if int64(len(data)) > limit {
		return nil, apperrors.ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") || !imageprocessor.IsValidImage(data) {
		return nil, apperrors.ErrInvalidFileType
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))

	// Крупные изображения пережимаются в JPEG с уменьшением стороны
	if s.processor.ShouldProcess(int64(len(data))) {
		processed, processedType, err := s.processor.Process(data)
		if err != nil {
			logger.WithError(err).Warn("image processing failed, storing original", "filename", file.Filename)
		} else {
			data = processed
			contentType = processedType
			ext = ".jpg"
		}
	}

	if ext == "" {
		ext = extensionFor(contentType)
	}
	path := storage.ObjectPath(string(kind), ext)

	if err := s.storage.Save(ctx, path, bytes.NewReader(data), contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := storage.URLFor(ctx, s.storage, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Debug("file uploaded", "path", path, "size", len(data), "content_type", contentType)

	return &dto.UploadResponse{
		URL:         url,
		Path:        path,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

func (s *uploadService) DeleteFile(ctx context.Context, path string) error {
	if err := s.storage.Delete(ctx, path); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *uploadService) sizeLimit(kind dto.UploadKind) int64 {
	if kind == dto.UploadKindArtwork {
		return s.cfg.Upload.MaxArtworkSize
	}
	return s.cfg.Upload.MaxAttachmentSize
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
