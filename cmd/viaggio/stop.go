// ABOUTME: Stop command, finalizes a trip from its persisted waypoints
// ABOUTME: Distance is replayed from storage so a dead tracker loses nothing

package main

import (
	"fmt"
	"time"

	"github.com/dmarchetti/viaggio/internal/session"
	"github.com/dmarchetti/viaggio/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop [trip-id]",
	Short: "Stop a trip and finalize its distance",
	Long: `Stop marks a trip as ended and computes its final distance by replaying
every waypoint recorded for it. With no argument it stops the active trip.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := tripFromArgs(args)
		if err != nil {
			return err
		}

		distanceKM, err := session.Reconcile(store, trip.ID, time.Now())
		if err != nil {
			return fmt.Errorf("failed to stop trip: %w", err)
		}

		logger.Info().Stringer("trip_id", trip.ID).Float64("distance_km", distanceKM).Msg("trip stopped")
		fmt.Printf("%s Stopped %s %s\n",
			color.GreenString("✓"),
			ui.TypeIcon(trip.Type),
			color.CyanString(trip.Destination))
		fmt.Printf("  distance: %s\n", ui.FormatDistance(distanceKM))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
