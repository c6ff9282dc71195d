package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/court-docket/pkg/db"
)

// SlotsInWindow retrieves the slots in the inclusive date range, ordered by
// date then insertion order, optionally restricted to one commission.
func (s store) SlotsInWindow(ctx context.Context, from, to time.Time, commission int) ([]db.Slot, error) {
	query := `
		SELECT id, seq, date, commission, available
		FROM slot
		WHERE date >= $1 AND date <= $2
	`
	args := []any{db.Day(from), db.Day(to)}
	if commission != 0 {
		query += ` AND commission = $3`
		args = append(args, commission)
	}
	query += ` ORDER BY date, seq`

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	defer rows.Close()

	var slots []db.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slots: %w", err)
	}
	return slots, nil
}

// AvailableSlot retrieves the open slot for (date, commission), or
// db.ErrNotFound. Inside Transact the row is locked until commit so two
// concurrent bookings cannot both see it open.
func (s store) AvailableSlot(ctx context.Context, date time.Time, commission int) (*db.Slot, error) {
	query := `
		SELECT id, seq, date, commission, available
		FROM slot
		WHERE date = $1 AND commission = $2 AND available
	`
	if s.locked {
		query += ` FOR UPDATE`
	}

	row := s.q.QueryRow(ctx, query, db.Day(date), commission)
	slot, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// SetSlotAvailable flips a slot's availability flag
func (s store) SetSlotAvailable(ctx context.Context, slotID string, available bool) error {
	tag, err := s.q.Exec(ctx, `UPDATE slot SET available = $2 WHERE id = $1`, slotID, available)
	if err != nil {
		return fmt.Errorf("failed to update slot availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// LatestSlot retrieves the most recently generated slot, or db.ErrNotFound
// for an empty ledger.
func (s store) LatestSlot(ctx context.Context) (*db.Slot, error) {
	query := `
		SELECT id, seq, date, commission, available
		FROM slot
		ORDER BY date DESC, seq DESC
		LIMIT 1
	`
	if s.locked {
		query += ` FOR UPDATE`
	}

	row := s.q.QueryRow(ctx, query)
	slot, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// InsertSlots inserts generated slots; seq is assigned by the database
func (s store) InsertSlots(ctx context.Context, slots []db.Slot) error {
	for _, slot := range slots {
		_, err := s.q.Exec(ctx, `
			INSERT INTO slot (id, date, commission, available)
			VALUES ($1, $2, $3, $4)
		`, slot.ID, db.Day(slot.Date), slot.Commission, slot.Available)
		if err != nil {
			return fmt.Errorf("failed to insert slot: %w", err)
		}
	}
	return nil
}

// DeleteSlotsBefore bulk-removes slots dated strictly before date
func (s store) DeleteSlotsBefore(ctx context.Context, date time.Time) (int64, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM slot WHERE date < $1`, db.Day(date))
	if err != nil {
		return 0, fmt.Errorf("failed to delete slots: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSlot(row pgx.Row) (db.Slot, error) {
	var slot db.Slot
	var date time.Time
	if err := row.Scan(&slot.ID, &slot.Seq, &date, &slot.Commission, &slot.Available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Slot{}, err
		}
		return db.Slot{}, fmt.Errorf("failed to scan slot: %w", err)
	}
	slot.Date = db.Day(date)
	return slot, nil
}
