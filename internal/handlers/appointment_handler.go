package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkspot_backend/internal/middleware"
	"inkspot_backend/internal/models"
	"inkspot_backend/internal/services"
	"inkspot_backend/internal/services/dto"
)

type AppointmentHandler struct {
	*BaseHandler
	appointmentService services.AppointmentService
}

func NewAppointmentHandler(base *BaseHandler, appointmentService services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		BaseHandler:        base,
		appointmentService: appointmentService,
	}
}

func (h *AppointmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Справочник слотов и зон - без авторизации, нужен форме бронирования
	r.GET("/appointments/options", h.GetSlotOptions)

	appointments := r.Group("/appointments")
	appointments.Use(middleware.AuthMiddleware())
	{
		appointments.GET("", h.List)
		appointments.GET("/unread-count", h.UnreadCount)
		appointments.POST("/mark-viewed", h.MarkAllViewed)
		appointments.GET("/:appointmentId", h.Get)
		appointments.POST("/:appointmentId/hide", h.Hide)
	}

	// Операции клиента
	client := r.Group("/appointments")
	client.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleClient))
	{
		client.POST("", h.Create)
		client.POST("/:appointmentId/respond", h.RespondToPrice)
		client.POST("/:appointmentId/cancel", h.Cancel)
	}

	// Операции артиста
	artist := r.Group("/appointments")
	artist.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleArtist))
	{
		artist.POST("/:appointmentId/propose-price", h.ProposePrice)
		artist.POST("/:appointmentId/reject", h.Reject)
	}
}

func (h *AppointmentHandler) GetSlotOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.appointmentService.SlotOptions())
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.appointmentService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.appointmentService.Get(h.GetDB(c), userID, c.Param("appointmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, ok := h.GetUserRole(c)
	if !ok {
		return
	}

	resp, err := h.appointmentService.ListForUser(h.GetDB(c), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AppointmentHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, ok := h.GetUserRole(c)
	if !ok {
		return
	}

	resp, err := h.appointmentService.UnreadCount(h.GetDB(c), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AppointmentHandler) MarkAllViewed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, ok := h.GetUserRole(c)
	if !ok {
		return
	}

	if err := h.appointmentService.MarkAllViewed(h.GetDB(c), userID, role); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) ProposePrice(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ProposePriceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.appointmentService.ProposePrice(h.GetDB(c), userID, c.Param("appointmentId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AppointmentHandler) RespondToPrice(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PriceDecisionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.appointmentService.RespondToPrice(h.GetDB(c), userID, c.Param("appointmentId"), req.Accept)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.appointmentService.Reject(h.GetDB(c), userID, c.Param("appointmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.appointmentService.Cancel(h.GetDB(c), userID, c.Param("appointmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AppointmentHandler) Hide(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.appointmentService.Hide(h.GetDB(c), userID, c.Param("appointmentId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
