package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSerial is returned when creating a user whose serial
	// number is already registered.
	ErrDuplicateSerial = errors.New("serial number already registered")

	// ErrOrphanedRecord is returned when a history row references an
	// owner that cannot be resolved. Given append-only, referentially
	// valid writes this indicates store corruption and is surfaced
	// rather than silently dropped.
	ErrOrphanedRecord = errors.New("history record references unknown user")
)
