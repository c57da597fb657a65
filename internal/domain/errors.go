package domain

import "errors"

// ErrNotFound is returned when a referenced event, slot, or artist does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when the request is invalid (e.g. a malformed time label or an unknown stage).
var ErrInvalidInput = errors.New("invalid input")

// ErrEventLocked is returned when a slot mutation targets a locked event. No state changes.
var ErrEventLocked = errors.New("event is locked")

// ErrForbidden is returned when the caller may not act on the resource (e.g. answering another artist's booking).
var ErrForbidden = errors.New("forbidden")
