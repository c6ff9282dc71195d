package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/court-docket/pkg/core/rotation"
	"github.com/jakechorley/court-docket/pkg/db"
)

func TestAvailability_FridaysFilteredFromAdvisoryList(t *testing.T) {
	database := db.NewMemDB()
	// Commission 3 has open slots on Monday 10th, Thursday 13th and Friday
	// 14th of June 2024
	seedSlots(t, database, date(2024, time.June, 10), 3)
	seedSlots(t, database, date(2024, time.June, 13), 3)
	seedSlots(t, database, date(2024, time.June, 14), 3)

	result, err := Availability(context.Background(), database, zapNop(), date(2024, time.June, 12), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Commission)
	assert.Equal(t, []time.Time{date(2024, time.June, 10), date(2024, time.June, 13)}, result.Dates,
		"Friday slots stay bookable but are left out of the advisory list")
	assert.False(t, result.CenterIsFriday)
}

func TestAvailability_SkipsTakenSlots(t *testing.T) {
	database := db.NewMemDB()
	monday := date(2024, time.June, 10)
	seedSlots(t, database, monday, 3)
	seedSlots(t, database, date(2024, time.June, 11), 3)
	mustBook(t, database, monday, BookingRequest{
		Date:       monday,
		Commission: 3,
		Court:      "Primera Instancia 1",
		CaseRef:    "482/2024",
	})

	result, err := Availability(context.Background(), database, zapNop(), monday, 3)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{date(2024, time.June, 11)}, result.Dates)
}

func TestAvailability_ReportsNearbyRepresentatives(t *testing.T) {
	database := db.NewMemDB()
	monday := date(2024, time.June, 10)
	tuesday := date(2024, time.June, 11)
	seedSlots(t, database, monday, 1, 2, 3)
	seedSlots(t, database, tuesday, 1)
	mustBook(t, database, monday, BookingRequest{
		Date:           monday,
		Commission:     2,
		Court:          "Mercantil 2",
		Representative: "Ana Torres",
		CaseRef:        "12/2023",
	})
	mustBook(t, database, tuesday, BookingRequest{
		Date:           tuesday,
		Commission:     1,
		Court:          "Instrucción 1",
		Representative: "Luis Vega",
		CaseRef:        "13/2023",
	})

	result, err := Availability(context.Background(), database, zapNop(), monday, 3)
	require.NoError(t, err)

	// Conflicts cover the whole window regardless of commission
	require.Len(t, result.Conflicts, 2)
	assert.Equal(t, Conflict{Representative: "Ana Torres", Date: monday}, result.Conflicts[0])
	assert.Equal(t, Conflict{Representative: "Luis Vega", Date: tuesday}, result.Conflicts[1])
}

func TestAvailability_FlagsFridayCenter(t *testing.T) {
	database := db.NewMemDB()

	result, err := Availability(context.Background(), database, zapNop(), date(2024, time.June, 14), 1)
	require.NoError(t, err)

	assert.True(t, result.CenterIsFriday)
	assert.Empty(t, result.Dates)
}

func TestAvailability_InvalidCommission(t *testing.T) {
	database := db.NewMemDB()

	_, err := Availability(context.Background(), database, zapNop(), date(2024, time.June, 12), 9)
	assert.ErrorIs(t, err, rotation.ErrInvalidCommission)
}
