// ABOUTME: Status command, shows the active trip and its recorded track so far
// ABOUTME: Distance shown is replayed from persisted waypoints

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmarchetti/viaggio/internal/geo"
	"github.com/dmarchetti/viaggio/internal/storage"
	"github.com/dmarchetti/viaggio/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active trip",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := store.ActiveTrip()
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Println("No active trip")
				return nil
			}
			return err
		}

		points, err := store.LocationsByTrip(trip.ID)
		if err != nil {
			return err
		}
		distanceKM := 0.0
		if len(points) >= 2 {
			path := make([]geo.Point, len(points))
			for i, p := range points {
				path[i] = geo.Point{Latitude: p.Latitude, Longitude: p.Longitude}
			}
			distanceKM = geo.PathDistance(path)
		}

		fmt.Printf("%s %s %s\n",
			color.GreenString("●"),
			ui.TypeIcon(trip.Type),
			color.CyanString(trip.Destination))
		fmt.Printf("  id:        %s\n", trip.ID)
		fmt.Printf("  started:   %s (%s)\n",
			trip.StartedAt.Format(time.RFC3339), ui.FormatRelativeTime(trip.StartedAt))
		fmt.Printf("  waypoints: %d\n", len(points))
		fmt.Printf("  distance:  %s\n", ui.FormatDistance(distanceKM))
		if len(points) > 0 {
			fmt.Printf("  last fix:  %s\n", ui.FormatWaypoint(points[len(points)-1]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
