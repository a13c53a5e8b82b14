package dto

import "time"

// ======================
// Request DTOs
// ======================

type UpdateProfileRequest struct {
	Name       *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	StudioName *string  `json:"studio_name,omitempty" validate:"omitempty,max=150"`
	City       *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Bio        *string  `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Styles     []string `json:"styles,omitempty" validate:"omitempty,dive,min=1,max=50"`
	AvatarURL  *string  `json:"avatar_url,omitempty" validate:"omitempty,max=500"`
	Phone      *string  `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// ======================
// Search Criteria DTO (for Query Params)
// ======================

type ArtistSearchCriteria struct {
	City     string `form:"city" validate:"omitempty,max=100"`
	Style    string `form:"style" validate:"omitempty,max=50"`
	Query    string `form:"q" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// ======================
// Response DTOs
// ======================

type ProfileResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email,omitempty"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Phone         string    `json:"phone,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	StudioName    string    `json:"studio_name,omitempty"`
	City          string    `json:"city,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Styles        []string  `json:"styles,omitempty"`
	AverageRating float64   `json:"average_rating"`
	RatingCount   int       `json:"rating_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type ArtistListResponse struct {
	Artists  []*ProfileResponse `json:"artists"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

type FollowedArtistsResponse struct {
	ArtistIDs []string           `json:"artist_ids"`
	Artists   []*ProfileResponse `json:"artists"`
}
