package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStaleUpdate is returned when an update's compare-and-swap on
	// updated_at fails because another writer got there first.
	ErrStaleUpdate = errors.New("entity modified by another writer")
)
