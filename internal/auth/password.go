package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt обрабатывает максимум 72 байта, остальное молча отрезает -
// поэтому длину ограничиваем еще на валидации
const maxPasswordLength = 72

// HashPassword хеширует пароль bcrypt-ом со стандартной стоимостью
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash сверяет пароль с хешем
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword - политика паролей при регистрации
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	if len(password) > maxPasswordLength {
		return errors.New("password must be at most 72 characters long")
	}
	return nil
}
