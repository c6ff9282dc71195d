package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMemDB_SlotsOrderedByDateThenSeq(t *testing.T) {
	ctx := context.Background()
	m := NewMemDB()

	require.NoError(t, m.InsertSlots(ctx, []Slot{
		{ID: "b", Date: day(2024, time.June, 11), Commission: 1, Available: true},
		{ID: "a", Date: day(2024, time.June, 10), Commission: 5, Available: true},
		{ID: "c", Date: day(2024, time.June, 10), Commission: 6, Available: true},
	}))

	slots, err := m.SlotsInWindow(ctx, day(2024, time.June, 10), day(2024, time.June, 11), 0)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "a", slots[0].ID)
	assert.Equal(t, "c", slots[1].ID)
	assert.Equal(t, "b", slots[2].ID)
	assert.Less(t, slots[0].Seq, slots[1].Seq)
}

func TestMemDB_RejectsDuplicateSlot(t *testing.T) {
	ctx := context.Background()
	m := NewMemDB()

	require.NoError(t, m.InsertSlots(ctx, []Slot{
		{ID: "a", Date: day(2024, time.June, 10), Commission: 5, Available: true},
	}))
	err := m.InsertSlots(ctx, []Slot{
		{ID: "b", Date: day(2024, time.June, 10), Commission: 5, Available: true},
	})
	assert.ErrorIs(t, err, ErrStorage)
}

func TestMemDB_LatestSlot(t *testing.T) {
	ctx := context.Background()
	m := NewMemDB()

	_, err := m.LatestSlot(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.InsertSlots(ctx, []Slot{
		{ID: "a", Date: day(2024, time.June, 10), Commission: 1, Available: true},
		{ID: "b", Date: day(2024, time.June, 10), Commission: 2, Available: true},
	}))

	latest, err := m.LatestSlot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID, "same date resolves by insertion order")
}

func TestMemDB_TransactRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	m := NewMemDB()
	boom := errors.New("boom")

	err := m.Transact(ctx, func(s Store) error {
		if err := s.InsertSlots(ctx, []Slot{
			{ID: "a", Date: day(2024, time.June, 10), Commission: 1, Available: true},
		}); err != nil {
			return err
		}
		if err := s.SaveTurnState(ctx, TurnState{Current: 6, Pending: []int{2}}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	slots, err := m.SlotsInWindow(ctx, day(2024, time.June, 1), day(2024, time.June, 30), 0)
	require.NoError(t, err)
	assert.Empty(t, slots, "failed transactions leave no slots behind")

	state, err := m.TurnState(ctx)
	require.NoError(t, err)
	assert.Equal(t, TurnState{Current: 1, Pending: []int{}}, TurnState{Current: state.Current, Pending: append([]int{}, state.Pending...)})
}

func TestMemDB_TransactCommits(t *testing.T) {
	ctx := context.Background()
	m := NewMemDB()

	err := m.Transact(ctx, func(s Store) error {
		return s.InsertSlots(ctx, []Slot{
			{ID: "a", Date: day(2024, time.June, 10), Commission: 1, Available: true},
		})
	})
	require.NoError(t, err)

	slot, err := m.AvailableSlot(ctx, day(2024, time.June, 10), 1)
	require.NoError(t, err)
	assert.Equal(t, "a", slot.ID)
}

func TestMemDB_DeleteBeforeCounts(t *testing.T) {
	ctx := context.Background()
	m := NewMemDB()

	require.NoError(t, m.InsertSlots(ctx, []Slot{
		{ID: "a", Date: day(2024, time.June, 7), Commission: 1, Available: true},
		{ID: "b", Date: day(2024, time.June, 10), Commission: 1, Available: true},
	}))
	require.NoError(t, m.InsertBooking(ctx, &Booking{ID: "x", Date: day(2024, time.June, 7), Commission: 1, Court: "Mercantil 1", CaseRef: "1/2024"}))

	slots, err := m.DeleteSlotsBefore(ctx, day(2024, time.June, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), slots)

	bookings, err := m.DeleteBookingsBefore(ctx, day(2024, time.June, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), bookings)

	remaining, err := m.SlotsInWindow(ctx, day(2024, time.June, 1), day(2024, time.June, 30), 0)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].ID)
}
