package db

import "time"

// Slot represents one bookable docket position for a (date, commission) pair.
// Seq is a monotonic insertion counter used as a tie-break when ordering a
// day's slots.
type Slot struct {
	ID         string
	Seq        int64
	Date       time.Time
	Commission int
	Available  bool
}

// Booking represents a case scheduled onto a slot
type Booking struct {
	ID             string
	Date           time.Time
	Commission     int
	Court          string
	Representative string
	CaseRef        string
}

// TurnState is the singleton rotation state: the commission currently due to
// receive the next on-sequence booking, and the commissions that already
// received an out-of-turn booking this cycle and are owed a skip.
type TurnState struct {
	Current int
	Pending []int
}

// Day normalizes a timestamp to a UTC calendar date, which is how all slot
// and booking dates are stored and compared.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
