package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services return these (usually wrapped) and the API layer maps them to HTTP
// status codes with `errors.Is()`, so business logic never knows about HTTP.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// validation (missing prompt, missing conversation header, ...).
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized signifies that the caller did not present the configured
	// backend API key.
	// This is mapped to a 401 Unauthorized HTTP status.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream signifies that a managed dependency (speech service, search
	// index) failed in a way the caller cannot fix.
	// This is typically mapped to a 502 Bad Gateway HTTP status.
	ErrUpstream = errors.New("upstream service failure")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
