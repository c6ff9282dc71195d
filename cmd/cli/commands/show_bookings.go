package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/court-docket/pkg/core/services"
)

// ShowBookingsCmd creates the showBookings command
func ShowBookingsCmd(app *AppContext) *cobra.Command {
	var commission int

	cmd := &cobra.Command{
		Use:   "showBookings <from> <to>",
		Short: "List bookings in a date range, optionally for one commission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDate(args[0])
			if err != nil {
				return err
			}
			to, err := parseDate(args[1])
			if err != nil {
				return err
			}

			bookings, err := services.ListBookings(app.Ctx, app.Database, app.Logger, from, to, commission)
			if err != nil {
				return err
			}

			if len(bookings) == 0 {
				fmt.Println("\nNo bookings in that range.")
				return nil
			}

			fmt.Printf("\nFound %d bookings:\n\n", len(bookings))
			for _, b := range bookings {
				rep := b.Representative
				if rep == "" {
					rep = "-"
				}
				fmt.Printf("  %s  commission %d  %-22s %-12s %s\n",
					b.Date.Format("2006-01-02"), b.Commission, b.Court, b.CaseRef, rep)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().IntVarP(&commission, "commission", "c", 0, "Restrict to one commission (1-7)")

	return cmd
}
