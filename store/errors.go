package store

import "errors"

var (
	// ErrKeyNotFound is returned when a key is absent or has expired
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidPattern is returned when a KEYS glob cannot be compiled
	ErrInvalidPattern = errors.New("invalid pattern")
)
