package db

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no record
	ErrNotFound = errors.New("record not found")

	// ErrSlotUnavailable is returned when a booking targets a slot that does
	// not exist or is already taken
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrStorage is returned when a storage transaction fails after the
	// backend's bounded retries
	ErrStorage = errors.New("storage failure")
)
