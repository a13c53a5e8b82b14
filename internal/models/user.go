package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	UserRoleClient UserRole = "client"
	UserRoleArtist UserRole = "artist"
)

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	FullName     string   `gorm:"not null" json:"full_name"`
	Phone        string   `json:"phone,omitempty"`
	ProfileImage string   `json:"profile_image,omitempty"`

	// Поля артиста
	StudioName string                      `json:"studio_name,omitempty"`
	City       string                      `gorm:"index" json:"city,omitempty"`
	Styles     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"styles,omitempty"`
	Bio        string                      `gorm:"type:text" json:"bio,omitempty"`

	// Агрегат рейтинга артиста. Поддерживается транзакционно
	// вместе с каждой записью отзыва (единственный писатель).
	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	RatingCount   int64   `gorm:"default:0" json:"rating_count"`

	// Клиент владеет ребром подписки, не артист
	FollowedArtists datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"followed_artists,omitempty"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
