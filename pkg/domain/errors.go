package domain

import "errors"

// ErrSessionNotFound is returned when a user id cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
