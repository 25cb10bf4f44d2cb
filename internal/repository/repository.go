package repository

import "errors"

var (
	// ErrGameNotFound is returned when no game has the requested id.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidRequest wraps validation errors of incoming requests.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrStorageDisabled is returned when a repository needs a service that is not configured.
	ErrStorageDisabled = errors.New("storage is not configured")
)
