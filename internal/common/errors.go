package common

import "errors"

// Business logic errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrLoadFailed is the single generic failure of any Row Store read.
	// Not-found, network and permission errors all collapse into it.
	ErrLoadFailed = errors.New("failed to load data")
)
