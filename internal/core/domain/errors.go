package domain

import "errors"

var (
	// ErrUnavailable signals that a search capability is not configured or
	// not present in the backing store. The orchestrator treats it as a
	// soft failure and falls through to the next strategy.
	ErrUnavailable = errors.New("search capability unavailable")

	// ErrMalformedRecord signals that a backing record is missing one of
	// the required fields (id, name, base price, stock).
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInvalidPage signals a caller contract violation: page and
	// itemsPerPage must both be >= 1.
	ErrInvalidPage = errors.New("invalid pagination")

	ErrNotFound = errors.New("not found")
)
