package repositories

import "errors"

// Adapters translate their backend's errors into these so services stay backend-agnostic.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
