package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/court-docket/pkg/core/calendar"
	"github.com/jakechorley/court-docket/pkg/db"
)

// ExtendResult reports the span of docket pages a calendar extension wrote
type ExtendResult struct {
	From    time.Time
	To      time.Time
	Created int
}

// ExtendCalendar extends the slot ledger from the day after its last
// generated date up to and including target. The commission counter
// continues from the most recently generated slot; an empty ledger starts
// the day after today with the counter at commission 1.
//
// The generation and insert run inside one transaction so concurrent
// extensions cannot interleave and produce duplicate (date, commission)
// pages.
func ExtendCalendar(ctx context.Context, database db.Database, logger *zap.Logger, today, target time.Time) (*ExtendResult, error) {
	target = db.Day(target)

	logger.Debug("Extending calendar", zap.String("target", target.Format("2006-01-02")))

	var result *ExtendResult
	err := database.Transact(ctx, func(s db.Store) error {
		lastDate := db.Day(today)
		lastCommission := 0

		last, err := s.LatestSlot(ctx)
		switch {
		case errors.Is(err, db.ErrNotFound):
			logger.Info("Slot ledger is empty, seeding calendar from today",
				zap.String("today", lastDate.Format("2006-01-02")))
		case err != nil:
			return fmt.Errorf("failed to find last generated slot: %w", err)
		default:
			lastDate = last.Date
			lastCommission = last.Commission
		}

		entries, err := calendar.Generate(lastDate, lastCommission, target)
		if err != nil {
			return err
		}

		slots := make([]db.Slot, len(entries))
		for i, e := range entries {
			slots[i] = db.Slot{
				ID:         uuid.New().String(),
				Date:       e.Date,
				Commission: e.Commission,
				Available:  true,
			}
		}
		if err := s.InsertSlots(ctx, slots); err != nil {
			return fmt.Errorf("failed to insert slots: %w", err)
		}

		result = &ExtendResult{
			From:    entries[0].Date,
			To:      entries[len(entries)-1].Date,
			Created: len(entries),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Calendar extended",
		zap.String("from", result.From.Format("2006-01-02")),
		zap.String("to", result.To.Format("2006-01-02")),
		zap.Int("slots", result.Created))

	return result, nil
}
