package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/court-docket/pkg/core/services"
)

// TurnCmd creates the turn command
func TurnCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "turn",
		Short: "Show the commission on turn and any pending jumps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := services.TurnStatus(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nCommission on turn: %d\n", state.Current)
			if len(state.Pending) > 0 {
				fmt.Printf("Pending jumps:      %v\n", state.Pending)
			}
			fmt.Println()

			return nil
		},
	}
}
