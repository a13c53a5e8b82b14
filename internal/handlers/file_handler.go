package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"inkspot_backend/internal/storage"
	"inkspot_backend/pkg/apperrors"
)

// FileHandler отдает файлы локального хранилища. Для S3/R2 ссылки
// ведут напрямую в бакет и этот путь не используется.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     store,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	{
		files.GET("/*path", h.ServeFile)
		files.HEAD("/*path", h.CheckFileExists)
	}
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	path, ok := cleanFilePath(c.Param("path"))
	if !ok {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), path)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func (h *FileHandler) CheckFileExists(c *gin.Context) {
	path, ok := cleanFilePath(c.Param("path"))
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	exists, err := h.storage.Exists(c.Request.Context(), path)
	if err != nil || !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// cleanFilePath нормализует wildcard-параметр и отсекает выход
// за пределы хранилища.
func cleanFilePath(raw string) (string, bool) {
	path := strings.TrimPrefix(raw, "/")
	if path == "" {
		return "", false
	}
	cleaned := filepath.ToSlash(filepath.Clean(path))
	if strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, "/../") {
		return "", false
	}
	return cleaned, true
}
