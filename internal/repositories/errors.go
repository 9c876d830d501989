package repositories

import "errors"

// ErrNotFound is returned when a record does not exist or is inactive.
// Inactive records are treated as absent on every read path.
var ErrNotFound = errors.New("record not found")
