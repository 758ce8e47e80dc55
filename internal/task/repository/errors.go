package repository

import "errors"

// ErrNotFound is returned when no live task matches the id and owner.
var ErrNotFound = errors.New("task not found")
