// ABOUTME: Start command, reactivates an existing trip
// ABOUTME: Deactivates whatever trip was active before

package main

import (
	"fmt"

	"github.com/dmarchetti/viaggio/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <trip-id>",
	Short: "Make an existing trip the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := resolveTrip(args[0])
		if err != nil {
			return err
		}
		if trip.Active {
			fmt.Printf("%s is already active\n", color.CyanString(trip.Destination))
			return nil
		}

		if err := store.ActivateTrip(trip.ID); err != nil {
			return fmt.Errorf("failed to activate trip: %w", err)
		}

		logger.Info().Stringer("trip_id", trip.ID).Msg("trip activated")
		fmt.Printf("%s %s %s is now active\n",
			color.GreenString("✓"),
			ui.TypeIcon(trip.Type),
			color.CyanString(trip.Destination))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
