package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrHeroNotFound indicates the requested hero does not exist
	ErrHeroNotFound = errors.New("hero not found")

	// ErrServerOffline indicates the Marvel API is unreachable
	ErrServerOffline = errors.New("marvel api is unreachable")

	// ErrAuthFailed indicates the API key pair was rejected
	ErrAuthFailed = errors.New("api keys were rejected")

	// ErrInvalidID indicates an identifier that belongs to neither id space
	ErrInvalidID = errors.New("invalid hero id")
)
