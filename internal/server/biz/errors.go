package biz

import (
	"errors"
)

var (
	ErrValidation   = errors.New("invalid input")
	ErrForbidden    = errors.New("subscription required")
	ErrInvalidToken = errors.New("invalid jwt token")
	ErrInternal     = errors.New("server internal error, please try again later")
)
