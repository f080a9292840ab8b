package service

import "errors"

// Failure taxonomy surfaced to handlers. Services wrap these with context via
// fmt.Errorf("...: %w", Err...); handlers map them onto HTTP statuses.
// Anything not matching one of these is a persistence failure and is
// reported as a generic message naming the attempted action. No mutation is
// retried automatically.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("already exists")
)
