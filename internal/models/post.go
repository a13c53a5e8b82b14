package models

import (
	"time"

	"gorm.io/datatypes"
)

// PostComment - элемент append-only списка комментариев поста
type PostComment struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Post - работа артиста в ленте.
// Likes - множество user id (toggle-семантика, без дублей).
type Post struct {
	BaseModel
	ArtistID string `gorm:"type:uuid;not null;index" json:"artist_id"`

	// Денормализованная витрина артиста на момент публикации
	ArtistName string `gorm:"not null" json:"artist_name"`
	StudioName string `json:"studio_name,omitempty"`
	City       string `json:"city,omitempty"`

	ImageURL    string `gorm:"not null" json:"image_url"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Likes    datatypes.JSONSlice[string]      `gorm:"type:jsonb" json:"likes"`
	Comments datatypes.JSONSlice[PostComment] `gorm:"type:jsonb" json:"comments"`
}

// IsLikedBy сообщает, есть ли лайк пользователя
func (p *Post) IsLikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike добавляет или снимает лайк, сохраняя likes множеством.
// Возвращает true, если лайк поставлен.
func (p *Post) ToggleLike(userID string) bool {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(p.Likes, userID)
	return true
}
