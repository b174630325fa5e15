package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrItemNotFound is returned when an item does not exist in the inventory
	ErrItemNotFound = errors.New("item not found")

	// ErrStoreUnavailable is returned when the inventory store cannot be reached
	ErrStoreUnavailable = errors.New("inventory store unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNotImplemented is returned by operations reserved for later work
	ErrNotImplemented = errors.New("not implemented")
)
