package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - единая ошибка приложения. Сервисы оборачивают в нее
// ошибки репозиториев и внешних коллабораторов, хэндлеры отдают ее
// клиенту через HandleError конвертом {"error": {...}}.
// Domain - бизнес-область источника ("appointment", "chat", "review",
// "generation", ...), по ней фронт и логи различают контекст.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// MarshalJSON отдает клиенту код, домен, сообщение и детали. Исходная
// ошибка (Err) наружу не сериализуется - она только для логов.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type wire struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&wire{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: e.Details,
	})
}

// WithDetails добавляет структурированные детали (например, карту
// ошибок валидации по полям)
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// New - базовый конструктор. Доменные фабрики в domain.go построены
// поверх него.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap - как New, но с сохранением исходной ошибки для Unwrap и логов
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	appErr := New(code, domain, message, httpCode)
	appErr.Err = err
	return appErr
}

// AsAppError достает *AppError из цепочки ошибок
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// As - обертка над errors.As, чтобы вызывающим не тянуть второй
// errors-импорт рядом с этим пакетом
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- Общие, не-доменные хелперы ---

// InternalError - неожиданная системная ошибка (500). Клиент получает
// нейтральное сообщение, подробности остаются в Err для логов.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// ValidationError - ошибка валидации запроса (400) с деталями по полям
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

// NewUnauthorizedError - нет или не принят токен (401)
func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

// NewForbiddenError - аутентифицирован, но операция чужая (403)
func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

// NewBadRequestError - некорректный запрос до стадии валидации DTO (400)
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}
