package domain

import "errors"

// Ошибки, которые возвращаются из use cases и адаптеров хранилища.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrValidation         = errors.New("validation failed")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameInUse      = errors.New("username already exists")
	ErrEmailInUse         = errors.New("email already exists")
	ErrTokenInvalid       = errors.New("invalid jwt token")
)

// ValidationError описывает некорректное поле входных данных.
// errors.Is(err, ErrValidation) для нее возвращает true.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError - конструктор для ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
