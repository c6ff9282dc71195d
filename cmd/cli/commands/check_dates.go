package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/court-docket/pkg/core/services"
)

// CheckDatesCmd creates the checkDates command
func CheckDatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkDates <date> [commission]",
		Short: "List open dates around a date for a commission (defaults to the commission on turn)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			center, err := parseDate(args[0])
			if err != nil {
				return err
			}

			var commission int
			if len(args) > 1 {
				if commission, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("commission must be a number: %w", err)
				}
			} else {
				state, err := services.TurnStatus(app.Ctx, app.Database, app.Logger)
				if err != nil {
					return err
				}
				commission = state.Current
			}

			result, err := services.Availability(app.Ctx, app.Database, app.Logger, center, commission)
			if err != nil {
				return err
			}

			fmt.Printf("\nOpen dates for commission %d:\n", result.Commission)
			if len(result.Dates) == 0 {
				fmt.Println("  (none)")
			}
			for _, d := range result.Dates {
				fmt.Printf("  %s\n", d.Format("2006-01-02 (Monday)"))
			}

			if result.CenterIsFriday {
				fmt.Printf("\n⚠️  %s is a FRIDAY\n", center.Format("2006-01-02"))
			}

			if len(result.Conflicts) > 0 {
				fmt.Println("\n⚠️  Representatives already booked nearby:")
				for _, c := range result.Conflicts {
					name := c.Representative
					if name == "" {
						name = "(no representative)"
					}
					fmt.Printf("  %s on %s\n", name, c.Date.Format("2006-01-02"))
				}
			}
			fmt.Println()

			return nil
		},
	}
}
