package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/court-docket/pkg/core/services"
)

// FillCalendarCmd creates the fillCalendar command
func FillCalendarCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fillCalendar <target_date>",
		Short: "Extend the docket calendar up to the target date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseDate(args[0])
			if err != nil {
				return err
			}

			result, err := services.ExtendCalendar(app.Ctx, app.Database, app.Logger, time.Now(), target)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Calendar filled!\n\n")
			fmt.Printf("First page: %s\n", result.From.Format("2006-01-02"))
			fmt.Printf("Last page:  %s\n", result.To.Format("2006-01-02"))
			fmt.Printf("Slots:      %d\n\n", result.Created)

			return nil
		},
	}
}
