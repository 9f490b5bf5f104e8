package entity

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrAlreadyExists     = errors.New("already exists")
	ErrAlreadyPaid       = errors.New("already paid")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDraftNotValid     = errors.New("draft not valid")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
)
