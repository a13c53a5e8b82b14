package dto

// UploadKind задает пространство имен для загружаемых файлов.
// От него зависят лимиты размера и путь в хранилище.
type UploadKind string

const (
	UploadKindArtwork     UploadKind = "artwork"
	UploadKindAppointment UploadKind = "appointments"
	UploadKindChat        UploadKind = "chat"
	UploadKindAvatar      UploadKind = "avatars"
)

// UploadResponse - результат загрузки файла
type UploadResponse struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
