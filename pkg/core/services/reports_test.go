package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/court-docket/pkg/db"
)

func TestListBookings_FiltersByCommission(t *testing.T) {
	database := db.NewMemDB()
	monday := date(2024, time.June, 10)
	tuesday := date(2024, time.June, 11)
	seedSlots(t, database, monday, 1, 2)
	seedSlots(t, database, tuesday, 1)
	mustBook(t, database, monday, BookingRequest{Date: monday, Commission: 2, Court: "Mercantil 2", CaseRef: "12/2023"})
	mustBook(t, database, monday, BookingRequest{Date: monday, Commission: 1, Court: "Instrucción 1", CaseRef: "13/2023"})
	mustBook(t, database, tuesday, BookingRequest{Date: tuesday, Commission: 1, Court: "Instrucción 1", CaseRef: "14/2023"})

	all, err := ListBookings(context.Background(), database, zapNop(), monday, tuesday, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.True(t, !all[0].Date.After(all[1].Date) && !all[1].Date.After(all[2].Date), "ordered by date")

	one, err := ListBookings(context.Background(), database, zapNop(), monday, tuesday, 1)
	require.NoError(t, err)
	require.Len(t, one, 2)
	for _, b := range one {
		assert.Equal(t, 1, b.Commission)
	}
}

func TestListBookings_InvalidRange(t *testing.T) {
	database := db.NewMemDB()

	_, err := ListBookings(context.Background(), database, zapNop(),
		date(2024, time.June, 11), date(2024, time.June, 10), 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDocketPage_RowsAndStandby(t *testing.T) {
	database := db.NewMemDB()
	monday := date(2024, time.June, 10)
	seedSlots(t, database, monday, 4, 5, 6, 7)
	mustBook(t, database, monday, BookingRequest{
		Date:           monday,
		Commission:     5,
		Court:          "Primera Instancia 2",
		Representative: "Ana Torres",
		CaseRef:        "482/2024",
	})

	page, err := DocketPage(context.Background(), database, zapNop(), monday)
	require.NoError(t, err)

	require.Len(t, page.Slots, 4)
	assert.Nil(t, page.Slots[0].Booking)
	require.NotNil(t, page.Slots[1].Booking)
	assert.Equal(t, "482/2024", page.Slots[1].Booking.CaseRef)
	assert.Equal(t, 1, page.Standby, "standby follows the day's last commission, wrapping 8 to 1")
}

func TestDocketPage_NotGenerated(t *testing.T) {
	database := db.NewMemDB()

	_, err := DocketPage(context.Background(), database, zapNop(), date(2024, time.June, 10))
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestDocketPages_SkipsUngeneratedDays(t *testing.T) {
	database := db.NewMemDB()
	friday := date(2024, time.June, 7)
	monday := date(2024, time.June, 10)
	seedSlots(t, database, friday, 1, 2, 3, 4)
	seedSlots(t, database, monday, 5, 6, 7, 1)

	// Friday through Tuesday: the weekend has no pages and Tuesday was
	// never generated
	pages, err := DocketPages(context.Background(), database, zapNop(), friday, date(2024, time.June, 11))
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, friday, pages[0].Date)
	assert.Equal(t, monday, pages[1].Date)
	assert.Equal(t, 2, pages[1].Standby)
}

func TestTurnStatus(t *testing.T) {
	database := db.NewMemDB()
	setTurn(t, database, 4, 6)

	state, err := TurnStatus(context.Background(), database, zapNop())
	require.NoError(t, err)
	assert.Equal(t, 4, state.Current)
	assert.Equal(t, []int{6}, state.Pending)
}

func TestPurge_RemovesPastRecords(t *testing.T) {
	ctx := context.Background()
	database := db.NewMemDB()
	friday := date(2024, time.June, 7)
	monday := date(2024, time.June, 10)
	seedSlots(t, database, friday, 1, 2, 3, 4)
	seedSlots(t, database, monday, 5, 6, 7, 1)
	mustBook(t, database, friday, BookingRequest{Date: friday, Commission: 2, Court: "Mercantil 2", CaseRef: "12/2023"})
	mustBook(t, database, monday, BookingRequest{Date: monday, Commission: 5, Court: "Instrucción 1", CaseRef: "13/2023"})

	result, err := Purge(ctx, database, zapNop(), monday)
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Slots)
	assert.Equal(t, int64(1), result.Bookings)

	// Only Monday's records remain
	slots, err := database.SlotsInWindow(ctx, friday, monday, 0)
	require.NoError(t, err)
	assert.Len(t, slots, 4)
	bookings, err := database.BookingsInWindow(ctx, friday, monday, 0)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, monday, bookings[0].Date)
}
