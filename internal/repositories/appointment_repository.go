package repositories

import (
	"errors"

	"inkspot_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *models.Appointment) error
	FindByID(db *gorm.DB, id string) (*models.Appointment, error)
	Save(db *gorm.DB, appointment *models.Appointment) error
	// FindForUser возвращает записи пользователя в его роли, новые первыми,
	// включая скрытые: их отфильтровывает сервис по hidden_by
	FindForUser(db *gorm.DB, userID string, role models.UserRole) ([]models.Appointment, error)
	// MarkAllViewed - best-effort батч независимых записей, не атомарен
	MarkAllViewed(db *gorm.DB, userID string, role models.UserRole) (int64, error)
}

type appointmentRepository struct{}

func NewAppointmentRepository() AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *models.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := db.Preload("Client").Preload("Artist").First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Save(db *gorm.DB, appointment *models.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) FindForUser(db *gorm.DB, userID string, role models.UserRole) ([]models.Appointment, error) {
	column := "client_id"
	preload := "Artist"
	if role == models.UserRoleArtist {
		column = "artist_id"
		preload = "Client"
	}

	var appointments []models.Appointment
	err := db.Preload(preload).
		Where(column+" = ?", userID).
		Order("created_at DESC").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) MarkAllViewed(db *gorm.DB, userID string, role models.UserRole) (int64, error) {
	column := "client_id"
	if role == models.UserRoleArtist {
		column = "artist_id"
	}

	res := db.Model(&models.Appointment{}).
		Where(column+" = ? AND viewed = ?", userID, false).
		Update("viewed", true)
	return res.RowsAffected, res.Error
}
