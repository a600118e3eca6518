package chat_errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrTokenExpired  = errors.New("token expired")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
	ErrStorage       = errors.New("storage failure")
)

// WrapStorage marks err as a storage failure while keeping the cause visible.
// Domain sentinels pass through untouched so errors.Is keeps working.
func WrapStorage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrForbidden) || errors.Is(err, ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
