package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkspot_backend/internal/middleware"
	"inkspot_backend/internal/models"
	"inkspot_backend/internal/services"
	"inkspot_backend/internal/services/dto"
)

type PostHandler struct {
	*BaseHandler
	postService services.PostService
}

func NewPostHandler(base *BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{
		BaseHandler: base,
		postService: postService,
	}
}

func (h *PostHandler) RegisterRoutes(r *gin.RouterGroup) {
	posts := r.Group("/posts")
	posts.Use(middleware.AuthMiddleware())
	{
		posts.GET("", h.Feed)
		posts.GET("/following", h.FollowedFeed)
		posts.GET("/artist/:artistId", h.ArtistPosts)
		posts.GET("/:postId", h.Get)
		posts.POST("/:postId/like", h.ToggleLike)
		posts.POST("/:postId/comments", h.AddComment)
	}

	artist := r.Group("/posts")
	artist.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleArtist))
	{
		artist.POST("", h.Create)
		artist.DELETE("/:postId", h.Delete)
	}
}

func (h *PostHandler) Feed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	resp, err := h.postService.Feed(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) FollowedFeed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.postService.FollowedFeed(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) ArtistPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.postService.ArtistPosts(h.GetDB(c), userID, c.Param("artistId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.postService.Get(h.GetDB(c), userID, c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.postService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(h.GetDB(c), userID, c.Param("postId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.postService.ToggleLike(h.GetDB(c), userID, c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.postService.AddComment(h.GetDB(c), userID, c.Param("postId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
