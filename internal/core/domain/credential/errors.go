package credential

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyPassword = errors.New("password must not be empty")
)
