package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkspot_backend/internal/middleware"
	"inkspot_backend/internal/services"
	"inkspot_backend/internal/services/dto"
	"inkspot_backend/pkg/apperrors"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	{
		uploads.POST("/:kind", h.UploadImage)
	}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	kind, ok := parseUploadKind(c.Param("kind"))
	if !ok {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown upload kind"))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file field"))
		return
	}

	resp, err := h.uploadService.UploadImage(c.Request.Context(), kind, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func parseUploadKind(raw string) (dto.UploadKind, bool) {
	switch dto.UploadKind(raw) {
	case dto.UploadKindArtwork, dto.UploadKindAppointment, dto.UploadKindChat, dto.UploadKindAvatar:
		return dto.UploadKind(raw), true
	default:
		return "", false
	}
}
