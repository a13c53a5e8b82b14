package apperrors

import (
	"github.com/gin-gonic/gin"

	"inkspot_backend/internal/logger"
)

// ErrorResponse - конверт ответа об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError пишет ошибку в ответ gin. Все, что не AppError,
// считается внутренней ошибкой; в release-режиме ее детали клиенту
// не уходят. Серверные ошибки (5xx) дополнительно логируются с
// request_id из контекста запроса.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if gin.Mode() == gin.ReleaseMode {
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "request failed", appErr,
			"domain", appErr.Domain,
			"code", string(appErr.Code),
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}
