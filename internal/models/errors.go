package models

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a record belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned when a unique field is already taken.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput is returned for metrics or requests that cannot be processed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrGeneration is returned when the language model produced nothing usable.
	ErrGeneration = errors.New("generation failed")
)
