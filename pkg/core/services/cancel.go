package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/court-docket/pkg/db"
)

// CancelResult carries the details the clerk needs to confirm which booking
// was struck off.
type CancelResult struct {
	Court      string
	Commission int
}

// Cancel removes the booking for (date, caseRef) and re-opens its slot.
//
// The rotation state is left untouched: cancelling a booking does not undo
// the turn it consumed or the pending jump it created. The paper docket this
// system replaced worked the same way.
func Cancel(ctx context.Context, database db.Database, logger *zap.Logger, date time.Time, caseRef string) (*CancelResult, error) {
	date = db.Day(date)

	logger.Debug("Cancelling booking",
		zap.String("date", date.Format("2006-01-02")),
		zap.String("case_ref", caseRef))

	var result *CancelResult
	err := database.Transact(ctx, func(s db.Store) error {
		booking, err := s.BookingByCase(ctx, date, caseRef)
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: no booking for %s with case %s",
				db.ErrNotFound, date.Format("2006-01-02"), caseRef)
		}
		if err != nil {
			return fmt.Errorf("failed to look up booking: %w", err)
		}

		slots, err := s.SlotsInWindow(ctx, date, date, booking.Commission)
		if err != nil {
			return fmt.Errorf("failed to look up slot: %w", err)
		}
		if len(slots) == 0 {
			return fmt.Errorf("%w: slot for %s commission %d",
				db.ErrNotFound, date.Format("2006-01-02"), booking.Commission)
		}

		if err := s.DeleteBooking(ctx, booking.ID); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}
		if err := s.SetSlotAvailable(ctx, slots[0].ID, true); err != nil {
			return fmt.Errorf("failed to re-open slot: %w", err)
		}

		result = &CancelResult{Court: booking.Court, Commission: booking.Commission}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Booking cancelled",
		zap.String("date", date.Format("2006-01-02")),
		zap.String("case_ref", caseRef),
		zap.Int("commission", result.Commission))

	return result, nil
}
