package repository

import "errors"

// This file defines custom errors specific to the repository layer.
// They let the store communicate outcomes in a driver-agnostic way: the service
// layer checks for these instead of `redis.Nil` or `sql.ErrNoRows`.

// ErrNotFound is returned when no conversation document exists for an id.
var ErrNotFound = errors.New("repository: not found")

// ErrAlreadyExists is returned by CreateConversation when a document with the
// same id was written first.
var ErrAlreadyExists = errors.New("repository: already exists")
