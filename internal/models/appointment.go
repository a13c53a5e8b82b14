package models

import (
	"gorm.io/datatypes"
)

// Appointment - одна запись-переговоры между клиентом и артистом.
// Статусные переходы описаны центральной таблицей в statuses.go.
type Appointment struct {
	BaseModel
	ClientID string `gorm:"type:uuid;not null;index" json:"client_id"`
	ArtistID string `gorm:"type:uuid;not null;index" json:"artist_id"`

	Date        string `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Time        string `gorm:"type:varchar(5);not null" json:"time"`  // слот HH:MM
	Description string `gorm:"type:text;not null" json:"description"`
	BodyArea    string `gorm:"not null" json:"body_area"`
	ImageURL    string `json:"image_url,omitempty"`

	Status AppointmentStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	Price  *float64          `json:"price,omitempty"` // появляется только вместе с price_proposed

	// Снимок контактов на момент создания, не выводится из профиля
	ContactName  string `gorm:"not null" json:"contact_name"`
	ContactPhone string `gorm:"not null" json:"contact_phone"`
	ContactEmail string `gorm:"not null" json:"contact_email"`

	// Viewed сбрасывается в false каждой сменой статуса.
	// HiddenBy - множество user id, скрывших запись из своего списка;
	// сама запись никогда не удаляется скрытием.
	Viewed   bool                        `gorm:"default:false" json:"viewed"`
	HiddenBy datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"hidden_by,omitempty"`

	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Artist *User `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
}

// IsHiddenFor сообщает, скрыл ли пользователь запись из своего списка
func (a *Appointment) IsHiddenFor(userID string) bool {
	for _, id := range a.HiddenBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Hide добавляет пользователя в HiddenBy как в множество (идемпотентно)
func (a *Appointment) Hide(userID string) {
	if a.IsHiddenFor(userID) {
		return
	}
	a.HiddenBy = append(a.HiddenBy, userID)
}

// Доступные слоты времени и зоны тела для формы записи
var AppointmentTimeSlots = []string{
	"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00",
}

var AppointmentBodyAreas = []string{
	"Arm", "Forearm", "Upper Arm", "Shoulder", "Back", "Chest", "Stomach",
	"Leg", "Thigh", "Calf", "Ankle", "Foot", "Hand", "Wrist", "Neck",
	"Hip", "Ribs", "Other",
}
