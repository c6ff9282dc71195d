package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/court-docket/pkg/core/services"
)

// BookCmd creates the book command
func BookCmd(app *AppContext) *cobra.Command {
	var representative string

	cmd := &cobra.Command{
		Use:   "book <date> <commission> <court> <case_ref>",
		Short: "Book a case onto the docket slot for a date and commission",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}
			commission, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("commission must be a number: %w", err)
			}

			booking, err := services.Book(app.Ctx, app.Database, app.Logger, app.Cfg.Courts, time.Now(), services.BookingRequest{
				Date:           date,
				Commission:     commission,
				Court:          args[2],
				Representative: representative,
				CaseRef:        args[3],
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Case booked!\n\n")
			fmt.Printf("Date:       %s\n", booking.Date.Format("2006-01-02"))
			fmt.Printf("Commission: %d\n", booking.Commission)
			fmt.Printf("Court:      %s\n", booking.Court)
			fmt.Printf("Case:       %s\n", booking.CaseRef)
			if booking.Representative != "" {
				fmt.Printf("Represent.: %s\n", booking.Representative)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVarP(&representative, "representative", "r", "", "Representative attending the enforcement")

	return cmd
}
