package entities

import (
	"errors"
	"fmt"
)

// Ошибки проверки входных данных.
var (
	ErrEmptyContent = errors.New("memo content is required")
	ErrEmptySummary = errors.New("summary is required")
	ErrInvalidForm  = errors.New("invalid memo form")
)

// StoreError описывает любую ошибку хранилища. Error() возвращает только общее
// сообщение, исходная причина доступна через errors.Unwrap.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError создает StoreError для операции op.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return "failed to " + e.Op
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ConfigError возвращается, когда не задан обязательный параметр (например, ключ API).
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("required configuration %s is not set", e.Key)
}

// GatewayError описывает неудачный или пустой ответ сервиса суммаризации.
type GatewayError struct {
	Reason string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("summarization failed: %s: %v", e.Reason, e.Err)
	}
	return "summarization failed: " + e.Reason
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsStoreError сообщает, является ли err ошибкой StoreError или оборачивает ее.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}
