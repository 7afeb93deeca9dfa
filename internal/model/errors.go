package model

import "errors"

// Errors returned by wardrobe operations. Callers match them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
