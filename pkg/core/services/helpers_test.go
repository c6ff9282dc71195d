package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/court-docket/pkg/db"
)

func zapNop() *zap.Logger {
	return zap.NewNop()
}

var testCourts = []string{
	"Primera Instancia 1",
	"Primera Instancia 2",
	"Instrucción 1",
	"Mercantil 2",
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedSlots inserts open slots for the given date, one per commission
func seedSlots(t *testing.T, database *db.MemDB, day time.Time, commissions ...int) {
	t.Helper()
	slots := make([]db.Slot, len(commissions))
	for i, c := range commissions {
		slots[i] = db.Slot{
			ID:         uuid.New().String(),
			Date:       day,
			Commission: c,
			Available:  true,
		}
	}
	require.NoError(t, database.InsertSlots(context.Background(), slots))
}

func setTurn(t *testing.T, database *db.MemDB, current int, pending ...int) {
	t.Helper()
	require.NoError(t, database.SaveTurnState(context.Background(), db.TurnState{
		Current: current,
		Pending: pending,
	}))
}

func mustBook(t *testing.T, database *db.MemDB, today time.Time, req BookingRequest) *db.Booking {
	t.Helper()
	booking, err := Book(context.Background(), database, zapNop(), testCourts, today, req)
	require.NoError(t, err)
	return booking
}
