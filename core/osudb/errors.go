package osudb

import "errors"

var (
	// ErrNotFound is returned when a store file does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMalformed is returned when a store cannot be decoded.
	ErrMalformed = errors.New("malformed data")
)
