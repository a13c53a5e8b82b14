package models

// Review - оценка артиста клиентом.
// Не больше одного отзыва на пару (artist_id, client_id):
// повторная отправка обновляет существующую запись.
type Review struct {
	BaseModel
	ArtistID string `gorm:"type:uuid;not null;index:idx_reviews_artist_client,unique" json:"artist_id"`
	ClientID string `gorm:"type:uuid;not null;index:idx_reviews_artist_client,unique" json:"client_id"`
	Rating   int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment  string `gorm:"type:text" json:"comment,omitempty"`

	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}
