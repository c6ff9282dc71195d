package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/court-docket/pkg/core/rotation"
	"github.com/jakechorley/court-docket/pkg/db"
)

// Book allocates a docket slot to a case. It validates the request, then in
// one transaction: takes the open slot for (date, commission), records the
// booking, and applies the turn consequences to the rotation state. If any
// step fails nothing is persisted.
//
// courts is the configured list of court names; today supplies the current
// date for the case-year check.
func Book(ctx context.Context, database db.Database, logger *zap.Logger, courts []string, today time.Time, req BookingRequest) (*db.Booking, error) {
	if err := validateBookingRequest(req, courts, today); err != nil {
		return nil, err
	}

	booking := &db.Booking{
		ID:             uuid.New().String(),
		Date:           db.Day(req.Date),
		Commission:     req.Commission,
		Court:          req.Court,
		Representative: titleRepresentative(req.Representative),
		CaseRef:        req.CaseRef,
	}

	logger.Debug("Booking case onto docket",
		zap.String("date", booking.Date.Format("2006-01-02")),
		zap.Int("commission", booking.Commission),
		zap.String("case_ref", booking.CaseRef))

	err := database.Transact(ctx, func(s db.Store) error {
		slot, err := s.AvailableSlot(ctx, booking.Date, booking.Commission)
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: no open slot for %s commission %d",
				db.ErrSlotUnavailable, booking.Date.Format("2006-01-02"), booking.Commission)
		}
		if err != nil {
			return fmt.Errorf("failed to look up slot: %w", err)
		}

		if err := s.InsertBooking(ctx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}
		if err := s.SetSlotAvailable(ctx, slot.ID, false); err != nil {
			return fmt.Errorf("failed to close slot: %w", err)
		}

		turn, err := s.TurnState(ctx)
		if err != nil {
			return fmt.Errorf("failed to load turn state: %w", err)
		}
		state := rotation.State{Current: turn.Current, Pending: turn.Pending}
		if err := state.Record(booking.Commission); err != nil {
			return err
		}
		if err := s.SaveTurnState(ctx, db.TurnState{Current: state.Current, Pending: state.Pending}); err != nil {
			return fmt.Errorf("failed to save turn state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Case booked",
		zap.String("booking_id", booking.ID),
		zap.String("date", booking.Date.Format("2006-01-02")),
		zap.Int("commission", booking.Commission),
		zap.String("case_ref", booking.CaseRef))

	return booking, nil
}
