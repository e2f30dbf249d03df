package domain

import "errors"

var (
	ErrInvalidOwner = errors.New("invalid_owner")
	ErrInvalidItem  = errors.New("invalid_item")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
