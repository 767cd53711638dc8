package usecase

import "errors"

// ErrInvalidInput marks request values the caller can fix.
var ErrInvalidInput = errors.New("invalid input")
