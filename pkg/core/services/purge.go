package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/court-docket/pkg/db"
)

// PurgeResult counts the records removed by a retention cleanup
type PurgeResult struct {
	Slots    int64
	Bookings int64
}

// Purge bulk-deletes every slot and booking dated strictly before the given
// date. Used to clear past docket pages once their dates have gone by.
func Purge(ctx context.Context, database db.Database, logger *zap.Logger, before time.Time) (*PurgeResult, error) {
	before = db.Day(before)

	logger.Debug("Purging docket records", zap.String("before", before.Format("2006-01-02")))

	var result PurgeResult
	err := database.Transact(ctx, func(s db.Store) error {
		var err error
		if result.Bookings, err = s.DeleteBookingsBefore(ctx, before); err != nil {
			return fmt.Errorf("failed to purge bookings: %w", err)
		}
		if result.Slots, err = s.DeleteSlotsBefore(ctx, before); err != nil {
			return fmt.Errorf("failed to purge slots: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Docket records purged",
		zap.String("before", before.Format("2006-01-02")),
		zap.Int64("slots", result.Slots),
		zap.Int64("bookings", result.Bookings))

	return &result, nil
}
