package repository

import "errors"

// ErrNotFound is returned when the row an operation targets does not exist.
var ErrNotFound = errors.New("not found")
