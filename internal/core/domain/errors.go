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

	// Query Errors.

	// ErrMalformedQuery indicates a delimited query that cannot be parsed.
	ErrMalformedQuery = errors.New("malformed query")

	// ErrUnsupportedFlag indicates a regular expression flag that cannot be
	// honoured or appears twice.
	ErrUnsupportedFlag = errors.New("unsupported flag")

	// Profile Errors.

	// ErrUnknownFormat indicates profile bytes in no recognised format.
	ErrUnknownFormat = errors.New("unknown profile format")

	// ErrEmptyProfile indicates a profile without any samples.
	ErrEmptyProfile = errors.New("empty profile")
)
