package service

import (
	"errors"

	"weeskitten/internal/apperror"

	"gorm.io/gorm"
)

// asAppError keeps apperror values and hides anything else behind message.
func asAppError(err error, message string) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(message, err)
}

// notFoundOr maps gorm.ErrRecordNotFound to a NotFound error and wraps the rest.
func notFoundOr(err error, notFound, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(notFound)
	}
	return asAppError(err, message)
}
