package dto

import (
	"time"

	"inkspot_backend/internal/models"
)

// ======================
// Request DTOs
// ======================

type CreateAppointmentRequest struct {
	ArtistID    string `json:"artist_id" validate:"required,uuid4"`
	Date        string `json:"date" validate:"required,appointment-date"`
	Time        string `json:"time" validate:"required,time-slot"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	BodyArea    string `json:"body_area" validate:"required,body-area"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=500"`

	// Контактные данные фиксируются на момент создания заявки
	ContactName  string `json:"contact_name" validate:"required,max=100"`
	ContactPhone string `json:"contact_phone" validate:"required,max=30"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}

type ProposePriceRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

type PriceDecisionRequest struct {
	Accept bool `json:"accept"`
}

// ======================
// Response DTOs
// ======================

type AppointmentResponse struct {
	ID           string                   `json:"id"`
	ClientID     string                   `json:"client_id"`
	ArtistID     string                   `json:"artist_id"`
	ClientName   string                   `json:"client_name,omitempty"`
	ArtistName   string                   `json:"artist_name,omitempty"`
	StudioName   string                   `json:"studio_name,omitempty"`
	Date         string                   `json:"date"`
	Time         string                   `json:"time"`
	Description  string                   `json:"description,omitempty"`
	BodyArea     string                   `json:"body_area"`
	ImageURL     string                   `json:"image_url,omitempty"`
	Status       models.AppointmentStatus `json:"status"`
	Price        *float64                 `json:"price,omitempty"`
	ContactName  string                   `json:"contact_name"`
	ContactPhone string                   `json:"contact_phone"`
	ContactEmail string                   `json:"contact_email"`
	Viewed       bool                     `json:"viewed"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// SlotOptionsResponse - справочник для формы бронирования
type SlotOptionsResponse struct {
	TimeSlots []string `json:"time_slots"`
	BodyAreas []string `json:"body_areas"`
}
