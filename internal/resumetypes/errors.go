package resumetypes

import "errors"

var (
	ErrNotFound     = errors.New("resume type not found")
	ErrConflict     = errors.New("resume type name already exists")
	ErrInvalidInput = errors.New("invalid input")
)
