// ABOUTME: Delete command, removes a trip and everything attached to it
// ABOUTME: Waypoints, photos and notes go with the trip

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <trip-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a trip and all its waypoints, photos and notes",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := resolveTrip(args[0])
		if err != nil {
			return err
		}

		if !deleteForce {
			count, err := store.LocationCount(trip.ID)
			if err != nil {
				return err
			}
			fmt.Printf("This removes %q and its %d waypoints permanently. Re-run with --force to confirm.\n",
				trip.Destination, count)
			return nil
		}

		if err := store.DeleteTrip(trip.ID); err != nil {
			return fmt.Errorf("failed to delete trip: %w", err)
		}

		logger.Info().Stringer("trip_id", trip.ID).Msg("trip deleted")
		fmt.Printf("%s Deleted %s\n", color.GreenString("✓"), trip.Destination)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")
	rootCmd.AddCommand(deleteCmd)
}
