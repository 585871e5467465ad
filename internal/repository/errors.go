package repository

import "errors"

// ErrNotFound is returned when a requested record is not found in the repository.
// This abstracts away the underlying storage implementation from the service layer.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// e.g. a second report for the same event or a second event with the same code.
var ErrDuplicate = errors.New("record already exists")

// ErrStaleVersion is returned when a versioned write (the event pagella) loses
// a last-write race: the caller's version no longer matches the stored one.
var ErrStaleVersion = errors.New("stale version")
