package handlers

import (
	"inkspot_backend/internal/services"
	"inkspot_backend/internal/storage"
	"inkspot_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	AppointmentHandler *AppointmentHandler
	ChatHandler        *ChatHandler
	PostHandler        *PostHandler
	ReviewHandler      *ReviewHandler
	UploadHandler      *UploadHandler
	GenerationHandler  *GenerationHandler
	FileHandler        *FileHandler
}

func NewAppHandlers(container *services.ServiceContainer, store storage.Storage, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, container.AuthService),
		UserHandler:        NewUserHandler(base, container.UserService),
		AppointmentHandler: NewAppointmentHandler(base, container.AppointmentService),
		ChatHandler:        NewChatHandler(base, container.ChatService),
		PostHandler:        NewPostHandler(base, container.PostService),
		ReviewHandler:      NewReviewHandler(base, container.ReviewService),
		UploadHandler:      NewUploadHandler(base, container.UploadService),
		GenerationHandler:  NewGenerationHandler(base, container.GenerationService),
		FileHandler:        NewFileHandler(base, store),
	}
}
