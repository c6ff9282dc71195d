package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/court-docket/pkg/db"
)

// AmendFields names the booking attributes to overwrite. Only fields whose
// Set flag is raised are touched; a court of CourtUnselected and an empty
// representative are ignored even when flagged.
type AmendFields struct {
	SetCourt bool
	Court    string

	SetRepresentative bool
	Representative    string

	SetCaseRef bool
	CaseRef    string
}

// Amend selectively rewrites descriptive fields of the booking held by
// (date, commission). It never touches the slot ledger or the rotation
// state.
func Amend(ctx context.Context, database db.Database, logger *zap.Logger, date time.Time, commission int, fields AmendFields) (*db.Booking, error) {
	date = db.Day(date)

	logger.Debug("Amending booking",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("commission", commission),
		zap.Bool("court", fields.SetCourt),
		zap.Bool("representative", fields.SetRepresentative),
		zap.Bool("case_ref", fields.SetCaseRef))

	var amended *db.Booking
	err := database.Transact(ctx, func(s db.Store) error {
		booking, err := s.BookingBySlot(ctx, date, commission)
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: no booking for %s commission %d",
				db.ErrNotFound, date.Format("2006-01-02"), commission)
		}
		if err != nil {
			return fmt.Errorf("failed to look up booking: %w", err)
		}

		if fields.SetCourt && fields.Court != CourtUnselected {
			booking.Court = fields.Court
		}
		if fields.SetRepresentative && fields.Representative != "" {
			booking.Representative = titleRepresentative(fields.Representative)
		}
		if fields.SetCaseRef {
			booking.CaseRef = fields.CaseRef
		}

		if err := s.UpdateBooking(ctx, booking); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		amended = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Booking amended",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("commission", commission))

	return amended, nil
}
