// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across storage consumers

package storage

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrActiveConflict is returned when more than one trip is marked active.
// This never happens through the guarded operations; seeing it means the
// store has been corrupted out-of-band.
var ErrActiveConflict = errors.New("multiple active trips")
