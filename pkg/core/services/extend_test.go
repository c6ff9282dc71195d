package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/court-docket/pkg/core/calendar"
	"github.com/jakechorley/court-docket/pkg/db"
)

func TestExtendCalendar_EmptyLedger(t *testing.T) {
	ctx := context.Background()
	database := db.NewMemDB()
	today := date(2024, time.June, 5) // Wednesday

	result, err := ExtendCalendar(ctx, database, zapNop(), today, date(2024, time.June, 6))
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.June, 6), result.From)
	assert.Equal(t, date(2024, time.June, 6), result.To)
	assert.Equal(t, 4, result.Created)

	// An empty ledger starts the commission counter at 1
	slots, err := database.SlotsInWindow(ctx, result.From, result.To, 0)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	for i, slot := range slots {
		assert.Equal(t, i+1, slot.Commission)
		assert.True(t, slot.Available)
		assert.NotEmpty(t, slot.ID)
	}
}

func TestExtendCalendar_ContinuesCommissionCounter(t *testing.T) {
	ctx := context.Background()
	database := db.NewMemDB()
	today := date(2024, time.June, 5)

	_, err := ExtendCalendar(ctx, database, zapNop(), today, date(2024, time.June, 6))
	require.NoError(t, err)
	_, err = ExtendCalendar(ctx, database, zapNop(), today, date(2024, time.June, 7))
	require.NoError(t, err)

	// Thursday ended on commission 4, so Friday runs 5, 6, 7, 1
	slots, err := database.SlotsInWindow(ctx, date(2024, time.June, 7), date(2024, time.June, 7), 0)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	commissions := []int{slots[0].Commission, slots[1].Commission, slots[2].Commission, slots[3].Commission}
	assert.Equal(t, []int{5, 6, 7, 1}, commissions)
}

func TestExtendCalendar_WeekendScenario(t *testing.T) {
	ctx := context.Background()
	database := db.NewMemDB()
	friday := date(2024, time.June, 7)
	seedSlots(t, database, friday, 2) // last generated slot: Friday, commission 2

	result, err := ExtendCalendar(ctx, database, zapNop(), friday, date(2024, time.June, 10))
	require.NoError(t, err)

	// Saturday and Sunday get no slots; Monday continues from commission 3
	assert.Equal(t, date(2024, time.June, 10), result.From)
	assert.Equal(t, date(2024, time.June, 10), result.To)
	slots, err := database.SlotsInWindow(ctx, date(2024, time.June, 8), date(2024, time.June, 10), 0)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	for i, slot := range slots {
		assert.Equal(t, date(2024, time.June, 10), slot.Date)
		assert.Equal(t, 3+i, slot.Commission)
	}
}

func TestExtendCalendar_InvalidRangeLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	database := db.NewMemDB()
	friday := date(2024, time.June, 7)
	seedSlots(t, database, friday, 2)

	_, err := ExtendCalendar(ctx, database, zapNop(), friday, friday)
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)

	_, err = ExtendCalendar(ctx, database, zapNop(), friday, friday.AddDate(0, 0, 366))
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)

	slots, err := database.SlotsInWindow(ctx, friday, friday.AddDate(1, 0, 0), 0)
	require.NoError(t, err)
	assert.Len(t, slots, 1, "failed extensions must not write slots")
}
