package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Пакет storage - объектное хранилище картинок приложения: артворки
// ленты, референсы записей, вложения чата, аватары. Бэкенд выбирается
// конфигом: локальный диск для разработки, S3 или Cloudflare R2 в
// продакшене.

// Пространства имен путей. Файл кладется как "<префикс>/<uuid><ext>".
// Артворки и аватары публичные, их ссылки постоянные; референсы
// записей и вложения чата наружу уходят только подписанной ссылкой.
const (
	PrefixArtwork      = "artwork"
	PrefixAppointments = "appointments"
	PrefixChat         = "chat"
	PrefixAvatars      = "avatars"
)

// Время жизни подписанной ссылки на приватный файл
const privateURLTTL = time.Hour

// Storage - операции с объектным хранилищем. Все пути относительные,
// внутри одного из пространств имен выше.
type Storage interface {
	// Save сохраняет файл по указанному пути
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get открывает файл на чтение
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete удаляет файл; отсутствие файла не считается ошибкой
	Delete(ctx context.Context, path string) error

	// Exists проверяет наличие файла
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL возвращает постоянную публичную ссылку
	GetURL(ctx context.Context, path string) (string, error)

	// GetSignedURL возвращает временную подписанную ссылку
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// GetSize возвращает размер файла в байтах
	GetSize(ctx context.Context, path string) (int64, error)
}

// ObjectPath строит путь хранения нового файла в пространстве kind
func ObjectPath(kind, ext string) string {
	return fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), ext)
}

// IsPrivate сообщает, лежит ли путь в приватном пространстве имен
func IsPrivate(path string) bool {
	return strings.HasPrefix(path, PrefixAppointments+"/") ||
		strings.HasPrefix(path, PrefixChat+"/")
}

// URLFor возвращает ссылку на файл с учетом приватности пути:
// публичные файлы - постоянной ссылкой, приватные - подписанной.
func URLFor(ctx context.Context, s Storage, path string) (string, error) {
	if IsPrivate(path) {
		return s.GetSignedURL(ctx, path, privateURLTTL)
	}
	return s.GetURL(ctx, path)
}

// Config - настройки хранилища из конфига приложения
type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // каталог локального хранилища
	BaseURL    string // база публичных ссылок
	Bucket     string // бакет S3/R2
	Region     string // регион S3
	AccessKey  string // ключи S3/R2
	SecretKey  string
	Endpoint   string // эндпоинт R2 или кастомного S3
	UseSSL     bool
	PublicRead bool // публичное чтение по умолчанию (S3 ACL)
}

// NewStorage создает хранилище по типу из конфига
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
