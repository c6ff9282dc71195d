package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/court-docket/pkg/core/services"
)

// AmendCmd creates the amend command
func AmendCmd(app *AppContext) *cobra.Command {
	var court, representative, caseRef string

	cmd := &cobra.Command{
		Use:   "amend <date> <commission>",
		Short: "Amend the descriptive fields of a booking",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}
			commission, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("commission must be a number: %w", err)
			}

			fields := services.AmendFields{
				SetCourt:          cmd.Flags().Changed("court"),
				Court:             court,
				SetRepresentative: cmd.Flags().Changed("representative"),
				Representative:    representative,
				SetCaseRef:        cmd.Flags().Changed("case-ref"),
				CaseRef:           caseRef,
			}

			booking, err := services.Amend(app.Ctx, app.Database, app.Logger, date, commission, fields)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Booking amended!\n\n")
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

	cmd.Flags().StringVar(&court, "court", "", "New court")
	cmd.Flags().StringVar(&representative, "representative", "", "New representative")
	cmd.Flags().StringVar(&caseRef, "case-ref", "", "New case reference")

	return cmd
}
