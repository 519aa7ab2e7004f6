package shared

import "errors"

var (
	ErrNotFound   = errors.New("catalog: not found")
	ErrValidation = errors.New("catalog: validation failed")
)
