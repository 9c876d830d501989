package services

import "errors"

// ErrForbidden is returned when an authenticated caller is not allowed to
// act on a record, e.g. editing a comment they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrValidation is returned when a create or update payload is malformed.
var ErrValidation = errors.New("validation failed")

// ErrInvalidCredentials is returned when a login or token refresh fails.
var ErrInvalidCredentials = errors.New("invalid credentials")
