package db

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemDB is an in-memory Database backend. It is the default backend for
// tests and single-user trials; the postgres backend is the production one.
type MemDB struct {
	mu    sync.Mutex
	state memState
}

type memState struct {
	slots    []Slot
	bookings []Booking
	turn     TurnState
	seq      int64
}

// NewMemDB creates an empty in-memory database with the rotation at
// commission 1 and no pending jumps.
func NewMemDB() *MemDB {
	return &MemDB{
		state: memState{turn: TurnState{Current: 1}},
	}
}

func (s *memState) clone() memState {
	c := memState{
		slots:    append([]Slot(nil), s.slots...),
		bookings: append([]Booking(nil), s.bookings...),
		turn:     TurnState{Current: s.turn.Current, Pending: append([]int(nil), s.turn.Pending...)},
		seq:      s.seq,
	}
	return c
}

// Transact serialises fn under the database mutex and restores a snapshot of
// the full state if fn fails, so a failed transaction leaves nothing behind.
func (m *MemDB) Transact(ctx context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(&memView{state: &m.state}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

// memView implements Store directly against the state, without locking.
// It is only ever handed out while the MemDB mutex is held.
type memView struct {
	state *memState
}

func (v *memView) SlotsInWindow(ctx context.Context, from, to time.Time, commission int) ([]Slot, error) {
	from, to = Day(from), Day(to)
	var out []Slot
	for _, s := range v.state.slots {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		if commission != 0 && s.Commission != commission {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

func (v *memView) AvailableSlot(ctx context.Context, date time.Time, commission int) (*Slot, error) {
	date = Day(date)
	for _, s := range v.state.slots {
		if s.Date.Equal(date) && s.Commission == commission && s.Available {
			found := s
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (v *memView) SetSlotAvailable(ctx context.Context, slotID string, available bool) error {
	for i := range v.state.slots {
		if v.state.slots[i].ID == slotID {
			v.state.slots[i].Available = available
			return nil
		}
	}
	return ErrNotFound
}

func (v *memView) LatestSlot(ctx context.Context) (*Slot, error) {
	var latest *Slot
	for i := range v.state.slots {
		s := &v.state.slots[i]
		if latest == nil || s.Date.After(latest.Date) || (s.Date.Equal(latest.Date) && s.Seq > latest.Seq) {
			latest = s
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	found := *latest
	return &found, nil
}

func (v *memView) InsertSlots(ctx context.Context, slots []Slot) error {
	for _, s := range slots {
		for _, existing := range v.state.slots {
			if existing.Date.Equal(Day(s.Date)) && existing.Commission == s.Commission {
				return fmt.Errorf("%w: duplicate slot for %s commission %d",
					ErrStorage, s.Date.Format("2006-01-02"), s.Commission)
			}
		}
		v.state.seq++
		s.Seq = v.state.seq
		s.Date = Day(s.Date)
		v.state.slots = append(v.state.slots, s)
	}
	return nil
}

func (v *memView) DeleteSlotsBefore(ctx context.Context, date time.Time) (int64, error) {
	date = Day(date)
	kept := v.state.slots[:0]
	var deleted int64
	for _, s := range v.state.slots {
		if s.Date.Before(date) {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	v.state.slots = kept
	return deleted, nil
}

func (v *memView) BookingsInWindow(ctx context.Context, from, to time.Time, commission int) ([]Booking, error) {
	from, to = Day(from), Day(to)
	var out []Booking
	for _, b := range v.state.bookings {
		if b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		if commission != 0 && b.Commission != commission {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (v *memView) BookingByCase(ctx context.Context, date time.Time, caseRef string) (*Booking, error) {
	date = Day(date)
	for _, b := range v.state.bookings {
		if b.Date.Equal(date) && b.CaseRef == caseRef {
			found := b
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (v *memView) BookingBySlot(ctx context.Context, date time.Time, commission int) (*Booking, error) {
	date = Day(date)
	for _, b := range v.state.bookings {
		if b.Date.Equal(date) && b.Commission == commission {
			found := b
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (v *memView) InsertBooking(ctx context.Context, booking *Booking) error {
	b := *booking
	b.Date = Day(b.Date)
	v.state.bookings = append(v.state.bookings, b)
	return nil
}

func (v *memView) UpdateBooking(ctx context.Context, booking *Booking) error {
	for i := range v.state.bookings {
		if v.state.bookings[i].ID == booking.ID {
			b := *booking
			b.Date = Day(b.Date)
			v.state.bookings[i] = b
			return nil
		}
	}
	return ErrNotFound
}

func (v *memView) DeleteBooking(ctx context.Context, bookingID string) error {
	for i := range v.state.bookings {
		if v.state.bookings[i].ID == bookingID {
			v.state.bookings = append(v.state.bookings[:i], v.state.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (v *memView) DeleteBookingsBefore(ctx context.Context, date time.Time) (int64, error) {
	date = Day(date)
	kept := v.state.bookings[:0]
	var deleted int64
	for _, b := range v.state.bookings {
		if b.Date.Before(date) {
			deleted++
			continue
		}
		kept = append(kept, b)
	}
	v.state.bookings = kept
	return deleted, nil
}

func (v *memView) TurnState(ctx context.Context) (TurnState, error) {
	t := v.state.turn
	t.Pending = append([]int(nil), t.Pending...)
	return t, nil
}

func (v *memView) SaveTurnState(ctx context.Context, state TurnState) error {
	v.state.turn = TurnState{
		Current: state.Current,
		Pending: append([]int(nil), state.Pending...),
	}
	return nil
}

// Locked single-call variants of the Store methods.

func (m *MemDB) SlotsInWindow(ctx context.Context, from, to time.Time, commission int) ([]Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).SlotsInWindow(ctx, from, to, commission)
}

func (m *MemDB) AvailableSlot(ctx context.Context, date time.Time, commission int) (*Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).AvailableSlot(ctx, date, commission)
}

func (m *MemDB) SetSlotAvailable(ctx context.Context, slotID string, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).SetSlotAvailable(ctx, slotID, available)
}

func (m *MemDB) LatestSlot(ctx context.Context) (*Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).LatestSlot(ctx)
}

func (m *MemDB) InsertSlots(ctx context.Context, slots []Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).InsertSlots(ctx, slots)
}

func (m *MemDB) DeleteSlotsBefore(ctx context.Context, date time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).DeleteSlotsBefore(ctx, date)
}

func (m *MemDB) BookingsInWindow(ctx context.Context, from, to time.Time, commission int) ([]Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).BookingsInWindow(ctx, from, to, commission)
}

func (m *MemDB) BookingByCase(ctx context.Context, date time.Time, caseRef string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).BookingByCase(ctx, date, caseRef)
}

func (m *MemDB) BookingBySlot(ctx context.Context, date time.Time, commission int) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).BookingBySlot(ctx, date, commission)
}

func (m *MemDB) InsertBooking(ctx context.Context, booking *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).InsertBooking(ctx, booking)
}

func (m *MemDB) UpdateBooking(ctx context.Context, booking *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).UpdateBooking(ctx, booking)
}

func (m *MemDB) DeleteBooking(ctx context.Context, bookingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).DeleteBooking(ctx, bookingID)
}

func (m *MemDB) DeleteBookingsBefore(ctx context.Context, date time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).DeleteBookingsBefore(ctx, date)
}

func (m *MemDB) TurnState(ctx context.Context) (TurnState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).TurnState(ctx)
}

func (m *MemDB) SaveTurnState(ctx context.Context, state TurnState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{state: &m.state}).SaveTurnState(ctx, state)
}
