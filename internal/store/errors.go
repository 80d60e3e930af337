package store

import "errors"

var (
	// ErrEmptyName is returned when a class is created with a name that is
	// empty after trimming.
	ErrEmptyName = errors.New("name is empty")

	// ErrClassExists is returned when a class with the same name already
	// exists, compared case-insensitively.
	ErrClassExists = errors.New("class already exists")
)
