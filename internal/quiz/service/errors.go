package service

import "errors"

// ErrInvalidInput reports a missing or empty required argument. It is
// returned before any business rule runs.
var ErrInvalidInput = errors.New("invalid_input")
