package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/court-docket/pkg/core/services"
)

// CancelCmd creates the cancel command
func CancelCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <date> <case_ref>",
		Short: "Cancel a booking and re-open its slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}

			result, err := services.Cancel(app.Ctx, app.Database, app.Logger, date, args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Booking cancelled!\n\n")
			fmt.Printf("Court:      %s\n", result.Court)
			fmt.Printf("Commission: %d\n\n", result.Commission)

			return nil
		},
	}
}
