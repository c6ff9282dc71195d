package db

import (
	"context"
	"time"
)

// Store defines the ledger operations the docket engine reads and writes.
// A commission argument of 0 means "all commissions". Date ranges are
// inclusive on both ends.
type Store interface {
	// Slot ledger
	SlotsInWindow(ctx context.Context, from, to time.Time, commission int) ([]Slot, error)
	AvailableSlot(ctx context.Context, date time.Time, commission int) (*Slot, error)
	SetSlotAvailable(ctx context.Context, slotID string, available bool) error
	LatestSlot(ctx context.Context) (*Slot, error)
	InsertSlots(ctx context.Context, slots []Slot) error
	DeleteSlotsBefore(ctx context.Context, date time.Time) (int64, error)

	// Booking ledger
	BookingsInWindow(ctx context.Context, from, to time.Time, commission int) ([]Booking, error)
	BookingByCase(ctx context.Context, date time.Time, caseRef string) (*Booking, error)
	BookingBySlot(ctx context.Context, date time.Time, commission int) (*Booking, error)
	InsertBooking(ctx context.Context, booking *Booking) error
	UpdateBooking(ctx context.Context, booking *Booking) error
	DeleteBooking(ctx context.Context, bookingID string) error
	DeleteBookingsBefore(ctx context.Context, date time.Time) (int64, error)

	// Turn tracker singleton
	TurnState(ctx context.Context) (TurnState, error)
	SaveTurnState(ctx context.Context, state TurnState) error
}

// Database defines the interface for all database operations.
// Both the in-memory MemDB and postgres.DB implement this interface.
//
// Transact runs fn against a store view with mutual exclusion and
// all-or-nothing semantics: if fn returns an error, no mutation it performed
// is visible afterwards. Inside Transact, AvailableSlot and TurnState reads
// are stable until commit (row-locked in the postgres backend).
type Database interface {
	Store
	Transact(ctx context.Context, fn func(Store) error) error
}
