package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkspot_backend/internal/middleware"
	"inkspot_backend/internal/models"
	"inkspot_backend/internal/services"
	"inkspot_backend/internal/services/dto"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	r.GET("/artists/:artistId/reviews", h.GetArtistReviews)

	// Protected routes - только клиенты оставляют отзывы
	reviews := r.Group("")
	reviews.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleClient))
	{
		reviews.GET("/artists/:artistId/reviews/me", h.GetMyReview)
		reviews.PUT("/artists/:artistId/reviews", h.SubmitReview)
		reviews.DELETE("/reviews/:reviewId", h.DeleteReview)
	}
}

func (h *ReviewHandler) GetArtistReviews(c *gin.Context) {
	resp, err := h.reviewService.GetArtistReviews(h.GetDB(c), c.Param("artistId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) GetMyReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.reviewService.GetMyReview(h.GetDB(c), userID, c.Param("artistId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.reviewService.SubmitReview(h.GetDB(c), userID, c.Param("artistId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(h.GetDB(c), userID, c.Param("reviewId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
