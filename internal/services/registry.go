package services

import (
	"inkspot_backend/internal/config"
	"inkspot_backend/internal/email"
	"inkspot_backend/internal/generation"
	"inkspot_backend/internal/imageprocessor"
	"inkspot_backend/internal/repositories"
	"inkspot_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	UserService        UserService
	AppointmentService AppointmentService
	ChatService        ChatService
	PostService        PostService
	ReviewService      ReviewService
	UploadService      UploadService
	GenerationService  GenerationService
}

// NewServiceContainer собирает сервисный слой. pusher может быть nil
// (тесты, окружения без websocket).
func NewServiceContainer(cfg *config.Config, store storage.Storage, pusher Pusher) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	tokenRepo := repositories.NewRefreshTokenRepository()
	appointmentRepo := repositories.NewAppointmentRepository()
	chatRepo := repositories.NewChatRepository()
	postRepo := repositories.NewPostRepository()
	reviewRepo := repositories.NewReviewRepository()

	mailer := email.NewSender(cfg)
	processor := imageprocessor.NewProcessor(
		cfg.Upload.MaxImageDimension,
		cfg.Upload.ImageQuality,
		cfg.Upload.CompressThreshold,
	)
	generationClient := generation.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)

	return &ServiceContainer{
		AuthService:        NewAuthService(userRepo, tokenRepo),
		UserService:        NewUserService(userRepo),
		AppointmentService: NewAppointmentService(appointmentRepo, userRepo, pusher, mailer),
		ChatService:        NewChatService(chatRepo, userRepo, pusher),
		PostService:        NewPostService(postRepo, userRepo),
		ReviewService:      NewReviewService(reviewRepo, userRepo),
		UploadService:      NewUploadService(store, processor, cfg),
		GenerationService:  NewGenerationService(generationClient),
	}
}
