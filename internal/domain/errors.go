package domain

import "errors"

// ErrNotFound is returned by the engine when a geocoding query matches no
// known place.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule (e.g. an empty
// or whitespace-only place name). Validation runs before any network call.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrIndex is returned by list operations when a position is out of range
// for the current list.
// Handlers should map this to HTTP 404.
var ErrIndex = errors.New("index out of range")

// ErrGateway is returned when an external service (geocoding or weather)
// fails: network error, non-200 status, or a malformed response body.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrGateway = errors.New("gateway error")

// ErrPersistence is returned by the store when writing state files fails.
// Mutations never roll back because of it: callers log it and the in-memory
// list stays authoritative.
var ErrPersistence = errors.New("persistence error")

// ErrSelectionPending is returned by Add while an earlier add is suspended
// on a candidate choice. The pending selection must be completed or
// cancelled first.
// Handlers should map this to HTTP 409 Conflict.
var ErrSelectionPending = errors.New("selection pending")

// ErrNoSelection is returned by Select when no add is suspended.
// Handlers should map this to HTTP 409 Conflict.
var ErrNoSelection = errors.New("no selection pending")
