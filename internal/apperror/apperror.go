package apperror

import (
	"errors"
	"fmt"
)

// Kind sentinels. Services wrap these into an *AppError; handlers map them
// to transport status codes with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrExhausted    = errors.New("capacity exhausted")
	ErrVerification = errors.New("external verification failed")
)

type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Err: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

func Expired(resource string) *AppError {
	return &AppError{Err: ErrExpired, Message: fmt.Sprintf("%s has expired", resource)}
}

func Exhausted(message string) *AppError {
	return &AppError{Err: ErrExhausted, Message: message}
}

func Verification(message string) *AppError {
	return &AppError{Err: ErrVerification, Message: message}
}
