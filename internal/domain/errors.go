package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrUpstreamOffline indicates the metadata API is unreachable
	ErrUpstreamOffline = errors.New("metadata service is unreachable")

	// ErrAuthFailed indicates the account session is missing or invalid
	ErrAuthFailed = errors.New("account session is invalid")
)
