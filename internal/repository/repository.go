package repository

import "errors"

// Sentinel errors returned by the in-memory stores. Services translate these
// into the typed API errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)
