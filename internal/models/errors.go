package models

import "errors"

// Domain errors surfaced by the auth and upload flows. Handlers map these
// to HTTP statuses; anything else is treated as an internal error.
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotImage           = errors.New("only image files are allowed")
	ErrTooManyFiles       = errors.New("too many files")
	ErrFileTooLarge       = errors.New("file too large")
	ErrStorage            = errors.New("storage failure")
)
