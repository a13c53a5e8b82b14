package validator

import (
	"log"
	"time"

	"inkspot_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правила приложение запускаться не должно
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-user-role': роль пользователя валидна
	mustRegister("is-user-role", validateUserRole)

	// 'time-slot': время из фиксированного набора слотов
	mustRegister("time-slot", validateTimeSlot)

	// 'body-area': зона тела из фиксированного списка
	mustRegister("body-area", validateBodyArea)

	// 'appointment-date': календарная дата в формате YYYY-MM-DD
	mustRegister("appointment-date", validateAppointmentDate)
}

// --- Функции валидации ---

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения проверяет 'required'
	}
	role := models.UserRole(value)
	return role == models.UserRoleClient || role == models.UserRoleArtist
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, slot := range models.AppointmentTimeSlots {
		if slot == value {
			return true
		}
	}
	return false
}

func validateBodyArea(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, area := range models.AppointmentBodyAreas {
		if area == value {
			return true
		}
	}
	return false
}

func validateAppointmentDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
