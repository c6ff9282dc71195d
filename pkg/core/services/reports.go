package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/court-docket/pkg/core/rotation"
	"github.com/jakechorley/court-docket/pkg/db"
)

// ListBookings returns the bookings in the inclusive date range, ordered by
// date, optionally restricted to one commission (0 = all). This feeds the
// external report renderer.
func ListBookings(ctx context.Context, database db.Database, logger *zap.Logger, from, to time.Time, commission int) ([]db.Booking, error) {
	from, to = db.Day(from), db.Day(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end %s is before start %s",
			ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	bookings, err := database.BookingsInWindow(ctx, from, to, commission)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	logger.Debug("Listed bookings",
		zap.String("from", from.Format("2006-01-02")),
		zap.String("to", to.Format("2006-01-02")),
		zap.Int("commission", commission),
		zap.Int("count", len(bookings)))

	return bookings, nil
}

// PageSlot is one row of a docket page: the slot and, when taken, its
// booking.
type PageSlot struct {
	Slot    db.Slot
	Booking *db.Booking
}

// Page is one day of the docket: the day's slots in generation order and
// the standby commission for the day (the commission after the day's last
// slot).
type Page struct {
	Date    time.Time
	Slots   []PageSlot
	Standby int
}

// DocketPage assembles the docket page for one date. Returns ErrNotFound if
// the calendar was never extended over that date.
func DocketPage(ctx context.Context, database db.Database, logger *zap.Logger, date time.Time) (*Page, error) {
	date = db.Day(date)

	slots, err := database.SlotsInWindow(ctx, date, date, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: no docket page for %s", db.ErrNotFound, date.Format("2006-01-02"))
	}

	bookings, err := database.BookingsInWindow(ctx, date, date, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	byCommission := make(map[int]*db.Booking, len(bookings))
	for i := range bookings {
		byCommission[bookings[i].Commission] = &bookings[i]
	}

	page := &Page{
		Date:    date,
		Standby: rotation.Next(slots[len(slots)-1].Commission),
	}
	for _, slot := range slots {
		page.Slots = append(page.Slots, PageSlot{
			Slot:    slot,
			Booking: byCommission[slot.Commission],
		})
	}

	logger.Debug("Assembled docket page",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("standby", page.Standby))

	return page, nil
}

// DocketPages assembles the docket pages for every workday in the inclusive
// range, skipping days the calendar was never extended over. The workday
// sequence is enumerated with an rrule so holidays handled upstream keep
// working if generation rules ever change.
func DocketPages(ctx context.Context, database db.Database, logger *zap.Logger, from, to time.Time) ([]Page, error) {
	from, to = db.Day(from), db.Day(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end %s is before start %s",
			ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		Dtstart:   from,
		Until:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build workday rule: %w", err)
	}

	var pages []Page
	for _, day := range rule.All() {
		page, err := DocketPage(ctx, database, logger, day)
		if errors.Is(err, db.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}

	logger.Debug("Assembled docket pages",
		zap.String("from", from.Format("2006-01-02")),
		zap.String("to", to.Format("2006-01-02")),
		zap.Int("pages", len(pages)))

	return pages, nil
}

// TurnStatus returns the current rotation state for display
func TurnStatus(ctx context.Context, database db.Database, logger *zap.Logger) (db.TurnState, error) {
	state, err := database.TurnState(ctx)
	if err != nil {
		return db.TurnState{}, fmt.Errorf("failed to load turn state: %w", err)
	}
	logger.Debug("Loaded turn state",
		zap.Int("current", state.Current),
		zap.Ints("pending", state.Pending))
	return state, nil
}
