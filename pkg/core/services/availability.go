package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/court-docket/pkg/core/calendar"
	"github.com/jakechorley/court-docket/pkg/core/rotation"
	"github.com/jakechorley/court-docket/pkg/db"
)

// availabilityRadius is the number of days either side of the requested
// date that an availability check covers.
const availabilityRadius = 5

// Conflict flags a representative who already has a booking on a date
// inside the checked window.
type Conflict struct {
	Representative string
	Date           time.Time
}

// AvailabilityResult lists the open dates for a commission around a target
// date, plus advisory warnings: representatives with nearby bookings and
// whether the target itself falls on a Friday.
type AvailabilityResult struct {
	Commission     int
	Dates          []time.Time
	CenterIsFriday bool
	Conflicts      []Conflict
}

// Availability reports the open slots for commission in the eleven-day
// window centred on center. Fridays are left out of the advisory date list
// even though their slots remain bookable; the court avoids scheduling
// enforcement on Fridays when it can. Pure read, no mutation.
func Availability(ctx context.Context, database db.Database, logger *zap.Logger, center time.Time, commission int) (*AvailabilityResult, error) {
	if !rotation.Valid(commission) {
		return nil, fmt.Errorf("%w: %d", rotation.ErrInvalidCommission, commission)
	}

	center = db.Day(center)
	from := center.AddDate(0, 0, -availabilityRadius)
	to := center.AddDate(0, 0, availabilityRadius)

	logger.Debug("Checking availability",
		zap.String("center", center.Format("2006-01-02")),
		zap.Int("commission", commission))

	slots, err := database.SlotsInWindow(ctx, from, to, commission)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}

	result := &AvailabilityResult{
		Commission:     commission,
		CenterIsFriday: calendar.IsFriday(center),
	}
	for _, slot := range slots {
		if !slot.Available || calendar.IsFriday(slot.Date) {
			continue
		}
		result.Dates = append(result.Dates, slot.Date)
	}

	bookings, err := database.BookingsInWindow(ctx, from, to, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	for _, b := range bookings {
		result.Conflicts = append(result.Conflicts, Conflict{
			Representative: b.Representative,
			Date:           b.Date,
		})
	}

	logger.Debug("Availability checked",
		zap.Int("open_dates", len(result.Dates)),
		zap.Int("conflicts", len(result.Conflicts)))

	return result, nil
}
