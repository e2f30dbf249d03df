package domain

import "errors"

var (
	ErrInvalidLabel = errors.New("invalid_label")
	ErrInvalidRate  = errors.New("invalid_rate")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
