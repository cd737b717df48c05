package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownEntityType indicates an unrecognised entity type tag.
	// Index updates for unknown types are logged and ignored rather
	// than failing the caller.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrCorruptHistory indicates persisted search history could not
	// be decoded. Callers treat it as an empty history.
	ErrCorruptHistory = errors.New("corrupt search history")

	// ErrMatcherUnavailable indicates no fuzzy matcher is configured.
	// Search degrades to exact substring matching without one.
	ErrMatcherUnavailable = errors.New("fuzzy matcher unavailable")
)
