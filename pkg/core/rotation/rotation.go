// Package rotation implements the commission turn rotation for the eviction
// docket. Seven commissions take bookings in a fixed cycle; a commission
// that takes a booking out of sequence becomes a "pending jump" and is
// skipped over when the natural rotation later reaches it, so no commission
// is ever double-counted within a cycle.
package rotation

import (
	"errors"
	"fmt"
)

// Commissions is the number of rotating work units in the docket.
const Commissions = 7

// ErrInvalidCommission is returned for commission values outside 1..7
var ErrInvalidCommission = errors.New("invalid commission")

// State holds the rotation position: the commission whose turn it is, and
// the commissions owed a skip because they already booked out of turn.
// Invariant: Current is in 1..7 and Pending never contains Current.
type State struct {
	Current int
	Pending []int
}

// Valid reports whether commission is a legal commission number
func Valid(commission int) bool {
	return commission >= 1 && commission <= Commissions
}

// Next returns the commission after c in the cycle, wrapping 8 to 1
func Next(c int) int {
	c++
	if c > Commissions {
		c = 1
	}
	return c
}

// IsPending reports whether commission is owed a skip
func (s *State) IsPending(commission int) bool {
	for _, p := range s.Pending {
		if p == commission {
			return true
		}
	}
	return false
}

func (s *State) addPending(commission int) {
	if s.IsPending(commission) {
		return
	}
	s.Pending = append(s.Pending, commission)
}

func (s *State) removePending(commission int) {
	for i, p := range s.Pending {
		if p == commission {
			s.Pending = append(s.Pending[:i], s.Pending[i+1:]...)
			return
		}
	}
}

// Record applies the turn consequences of a successful booking for the given
// commission.
//
// An out-of-turn booking leaves the turn where it is and marks the booking
// commission as pending: it has paid its slot for this cycle in advance. An
// on-turn booking advances the turn to the next commission that is actually
// owed one, consuming the pending mark of every commission it skips.
//
// The update is a single in-memory transition; callers that persist the
// state must do so atomically with the booking itself.
func (s *State) Record(commission int) error {
	if !Valid(commission) {
		return fmt.Errorf("%w: %d", ErrInvalidCommission, commission)
	}

	if commission != s.Current {
		s.addPending(commission)
		return nil
	}

	t := Next(s.Current)
	for s.IsPending(t) {
		s.removePending(t)
		t = Next(t)
	}
	s.Current = t
	return nil
}
