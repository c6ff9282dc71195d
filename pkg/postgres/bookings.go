package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/court-docket/pkg/db"
)

// BookingsInWindow retrieves the bookings in the inclusive date range,
// ordered by date, optionally restricted to one commission.
func (s store) BookingsInWindow(ctx context.Context, from, to time.Time, commission int) ([]db.Booking, error) {
	query := `
		SELECT id, date, commission, court, representative, case_ref
		FROM booking
		WHERE date >= $1 AND date <= $2
	`
	args := []any{db.Day(from), db.Day(to)}
	if commission != 0 {
		query += ` AND commission = $3`
		args = append(args, commission)
	}
	query += ` ORDER BY date`

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}
	return bookings, nil
}

// BookingByCase retrieves the booking for (date, case_ref), or db.ErrNotFound
func (s store) BookingByCase(ctx context.Context, date time.Time, caseRef string) (*db.Booking, error) {
	row := s.q.QueryRow(ctx, `
		SELECT id, date, commission, court, representative, case_ref
		FROM booking
		WHERE date = $1 AND case_ref = $2
	`, db.Day(date), caseRef)

	booking, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// BookingBySlot retrieves the booking for (date, commission), or db.ErrNotFound
func (s store) BookingBySlot(ctx context.Context, date time.Time, commission int) (*db.Booking, error) {
	row := s.q.QueryRow(ctx, `
		SELECT id, date, commission, court, representative, case_ref
		FROM booking
		WHERE date = $1 AND commission = $2
	`, db.Day(date), commission)

	booking, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// InsertBooking inserts a new booking record
func (s store) InsertBooking(ctx context.Context, booking *db.Booking) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO booking (id, date, commission, court, representative, case_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, booking.ID, db.Day(booking.Date), booking.Commission, booking.Court, booking.Representative, booking.CaseRef)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// UpdateBooking rewrites a booking's descriptive fields
func (s store) UpdateBooking(ctx context.Context, booking *db.Booking) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE booking
		SET court = $2, representative = $3, case_ref = $4
		WHERE id = $1
	`, booking.ID, booking.Court, booking.Representative, booking.CaseRef)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteBooking removes a booking record
func (s store) DeleteBooking(ctx context.Context, bookingID string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM booking WHERE id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteBookingsBefore bulk-removes bookings dated strictly before date
func (s store) DeleteBookingsBefore(ctx context.Context, date time.Time) (int64, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM booking WHERE date < $1`, db.Day(date))
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanBooking(row pgx.Row) (db.Booking, error) {
	var booking db.Booking
	var date time.Time
	err := row.Scan(&booking.ID, &date, &booking.Commission, &booking.Court,
		&booking.Representative, &booking.CaseRef)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Booking{}, err
		}
		return db.Booking{}, fmt.Errorf("failed to scan booking: %w", err)
	}
	booking.Date = db.Day(date)
	return booking, nil
}
