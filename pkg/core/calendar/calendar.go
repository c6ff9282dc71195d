// Package calendar generates the bookable docket entries that extend the
// slot ledger forward in time.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/jakechorley/court-docket/pkg/core/rotation"
)

// SlotsPerDay is the number of docket positions written for each generation
// day.
const SlotsPerDay = 4

// MaxExtensionDays caps how far past the last generated date the calendar
// may be extended in one call.
const MaxExtensionDays = 365

// ErrInvalidRange is returned when the extension target is not after the
// last generated date, or is more than a year past it
var ErrInvalidRange = errors.New("invalid extension range")

// Entry is one generated docket position, not yet persisted
type Entry struct {
	Date       time.Time
	Commission int
}

// Generate produces the docket entries from the day after lastDate up to
// target. The commission counter continues from lastCommission (the
// commission of the most recently generated slot; 0 for an empty ledger,
// which seeds the counter at commission 1).
//
// Weekend days are not generation days: when the cursor lands on a Saturday
// or Sunday it jumps two days forward and generation resumes there. The
// commission counter is deliberately not rewound across that jump, so the
// commission sequence stays continuous in rotation-space even though it is
// discontinuous in calendar-days. This matches the docket books the system
// replaced and must not be normalized.
func Generate(lastDate time.Time, lastCommission int, target time.Time) ([]Entry, error) {
	lastDate = day(lastDate)
	target = day(target)

	if !target.After(lastDate) {
		return nil, fmt.Errorf("%w: target %s is not after the last generated date %s",
			ErrInvalidRange, target.Format("2006-01-02"), lastDate.Format("2006-01-02"))
	}
	if target.After(lastDate.AddDate(0, 0, MaxExtensionDays)) {
		return nil, fmt.Errorf("%w: target %s is more than a year past the last generated date %s",
			ErrInvalidRange, target.Format("2006-01-02"), lastDate.Format("2006-01-02"))
	}

	commission := rotation.Next(lastCommission)
	cursor := lastDate.AddDate(0, 0, 1)

	var entries []Entry
	for !cursor.After(target) {
		if isoWeekday(cursor) > 5 {
			cursor = cursor.AddDate(0, 0, 2)
		}
		for i := 0; i < SlotsPerDay; i++ {
			entries = append(entries, Entry{Date: cursor, Commission: commission})
			commission = rotation.Next(commission)
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return entries, nil
}

// IsWorkday reports whether d is a docket generation day (Monday to Friday)
func IsWorkday(d time.Time) bool {
	return isoWeekday(d) <= 5
}

// IsFriday reports whether d is a Friday; bookings on Fridays get a warning
// in availability checks
func IsFriday(d time.Time) bool {
	return isoWeekday(d) == 5
}

// isoWeekday returns the ISO 8601 weekday rank: Monday 1 .. Sunday 7
func isoWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
