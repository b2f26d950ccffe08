// Package apperr defines sentinel errors shared across the application.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate zettel")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRow        = errors.New("malformed row")
)
