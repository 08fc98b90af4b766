package service

import (
	"errors"
	"fmt"
)

// Ошибки сервисного слоя. Обработчики сопоставляют их с HTTP-кодами.
var (
	ErrInvalidField       = errors.New("invalid field")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrStorage            = errors.New("storage error")
	ErrMissingFields      = errors.New("missing fields")
	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError: ошибка валидации конкретного поля. errors.Is(err, ErrInvalidField) == true.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %q", e.Field)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidField
}

func invalid(field string) error {
	return &FieldError{Field: field}
}

// InvalidFieldName возвращает имя поля из ошибки валидации, если оно есть.
func InvalidFieldName(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
