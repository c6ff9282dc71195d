package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/court-docket/pkg/core/services"
)

// PurgeCmd creates the purge command
func PurgeCmd(app *AppContext) *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete past docket pages and their bookings (before today by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cutoff := time.Now()
			if before != "" {
				var err error
				if cutoff, err = parseDate(before); err != nil {
					return err
				}
			}

			result, err := services.Purge(app.Ctx, app.Database, app.Logger, cutoff)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Purged %d slots and %d bookings before %s\n\n",
				result.Slots, result.Bookings, cutoff.Format("2006-01-02"))

			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Delete records dated before this date (YYYY-MM-DD)")

	return cmd
}
