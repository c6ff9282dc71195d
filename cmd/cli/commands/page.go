package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/court-docket/pkg/core/services"
)

// PageCmd creates the page command
func PageCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "page <date>",
		Short: "Show the docket page for one date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}

			page, err := services.DocketPage(app.Ctx, app.Database, app.Logger, date)
			if err != nil {
				return err
			}

			printPage(page)
			return nil
		},
	}
}

// PagesCmd creates the pages command
func PagesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pages <from> <to>",
		Short: "Show the docket pages for every workday in a range",
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

			pages, err := services.DocketPages(app.Ctx, app.Database, app.Logger, from, to)
			if err != nil {
				return err
			}
			if len(pages) == 0 {
				fmt.Println("\nNo docket pages in that range.")
				return nil
			}

			for i := range pages {
				printPage(&pages[i])
			}
			return nil
		},
	}
}

func printPage(page *services.Page) {
	fmt.Printf("\nDocket page %s\n\n", page.Date.Format("2006-01-02 (Monday)"))
	for _, row := range page.Slots {
		if row.Booking == nil {
			fmt.Printf("  commission %d  (open)\n", row.Slot.Commission)
			continue
		}
		rep := row.Booking.Representative
		if rep == "" {
			rep = "-"
		}
		fmt.Printf("  commission %d  %-22s %-12s %s\n",
			row.Slot.Commission, row.Booking.Court, row.Booking.CaseRef, rep)
	}
	fmt.Printf("\nStandby commission: %d\n", page.Standby)
}
