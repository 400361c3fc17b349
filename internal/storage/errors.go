package storage

import "errors"

var (
	// ErrDuplicateValue reports a uniqueness violation: a category title or
	// live tracker name already in use.
	ErrDuplicateValue = errors.New("duplicate value")
	// ErrNotFound reports a lookup or mutation on a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStore reports a store that could not be opened, migrated or
	// mapped from its rows.
	ErrInvalidStore = errors.New("invalid store")
	// ErrFutureDate rejects completion marks for a day after today.
	ErrFutureDate = errors.New("day is in the future")
	// ErrCategoryNotEmpty rejects deleting a category that still holds live trackers.
	ErrCategoryNotEmpty = errors.New("category still has trackers")
)
