package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkspot_backend/internal/middleware"
	"inkspot_backend/internal/services"
	"inkspot_backend/internal/services/dto"
)

type GenerationHandler struct {
	*BaseHandler
	generationService services.GenerationService
}

func NewGenerationHandler(base *BaseHandler, generationService services.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		BaseHandler:       base,
		generationService: generationService,
	}
}

func (h *GenerationHandler) RegisterRoutes(r *gin.RouterGroup) {
	gen := r.Group("/generation")
	gen.Use(middleware.AuthMiddleware())
	{
		gen.POST("/sketch", h.GenerateSketch)
	}
}

func (h *GenerationHandler) GenerateSketch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateImageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.generationService.GenerateSketch(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
