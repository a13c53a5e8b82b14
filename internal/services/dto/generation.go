package dto

// GenerateImageRequest - запрос генерации эскиза по текстовому описанию
type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required,min=3,max=1000"`
}

// GenerateImageResponse - сгенерированное изображение
type GenerateImageResponse struct {
	URL string `json:"url"`
}
