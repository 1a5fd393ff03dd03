package apperrors

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrUnknownBackend = errors.New("unknown storage backend")
)
