package yatgentity

import "errors"

var (
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrEntityOutOfBounds = errors.New("entity out of text bounds")
)
