package services

import (
	"context"
	"net/http"

	"inkspot_backend/internal/generation"
	"inkspot_backend/internal/logger"
	"inkspot_backend/internal/services/dto"
	"inkspot_backend/pkg/apperrors"
)

type GenerationService interface {
	GenerateSketch(ctx context.Context, userID string, req *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error)
}

type generationService struct {
	client *generation.Client
}

func NewGenerationService(client *generation.Client) GenerationService {
	return &generationService{client: client}
}

func (s *generationService) GenerateSketch(ctx context.Context, userID string, req *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error) {
	if !s.client.Configured() {
		return nil, apperrors.New(
			apperrors.CodeExternalServiceError,
			"generation",
			"Image generation is not configured",
			http.StatusServiceUnavailable,
		)
	}

	url, err := s.client.GenerateImage(ctx, req.Prompt)
	if err != nil {
		logger.CtxWithError(ctx, "image generation failed", err, "user_id", userID)
		// Текст ошибки провайдера отдаем клиенту без пересказа
		return nil, apperrors.ErrExternalService(err, "generation", err.Error())
	}

	logger.CtxInfo(ctx, "image generated", "user_id", userID)
	return &dto.GenerateImageResponse{URL: url}, nil
}
