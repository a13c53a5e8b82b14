package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreatePostRequest struct {
	ImageURL    string `json:"image_url" validate:"required,max=500"`
	Title       string `json:"title" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// ======================
// Response DTOs
// ======================

type CommentResponse struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type PostResponse struct {
	ID          string             `json:"id"`
	ArtistID    string             `json:"artist_id"`
	ArtistName  string             `json:"artist_name"`
	StudioName  string             `json:"studio_name,omitempty"`
	City        string             `json:"city,omitempty"`
	ImageURL    string             `json:"image_url"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	LikeCount   int                `json:"like_count"`
	Liked       bool               `json:"liked"`
	Comments    []*CommentResponse `json:"comments"`
	CreatedAt   time.Time          `json:"created_at"`
}

type PostListResponse struct {
	Posts    []*PostResponse `json:"posts"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
