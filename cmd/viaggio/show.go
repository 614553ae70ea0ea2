// ABOUTME: Show command, prints one trip in detail
// ABOUTME: Optionally dumps the full recorded track

package main

import (
	"fmt"
	"time"

	"github.com/dmarchetti/viaggio/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showTrack bool

var showCmd = &cobra.Command{
	Use:   "show <trip-id>",
	Short: "Show trip details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := resolveTrip(args[0])
		if err != nil {
			return err
		}

		locations, err := store.LocationCount(trip.ID)
		if err != nil {
			return err
		}
		photos, err := store.PhotosByTrip(trip.ID)
		if err != nil {
			return err
		}
		notes, err := store.NotesByTrip(trip.ID)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.TypeIcon(trip.Type), color.New(color.Bold).Sprint(trip.Destination))
		fmt.Printf("  id:        %s\n", trip.ID)
		fmt.Printf("  type:      %s\n", ui.TypeName(trip.Type))
		fmt.Printf("  started:   %s\n", trip.StartedAt.Format(time.RFC3339))
		if trip.EndedAt != nil {
			fmt.Printf("  ended:     %s\n", trip.EndedAt.Format(time.RFC3339))
			fmt.Printf("  duration:  %s\n", ui.FormatDuration(trip.EndedAt.Sub(trip.StartedAt)))
		} else if trip.Active {
			fmt.Printf("  status:    %s\n", color.GreenString("active"))
		}
		fmt.Printf("  distance:  %s\n", ui.FormatDistance(trip.DistanceKM))
		fmt.Printf("  waypoints: %d\n", locations)
		if trip.Description != nil {
			fmt.Printf("  about:     %s\n", *trip.Description)
		}
		if trip.Category != nil {
			fmt.Printf("  category:  %s\n", *trip.Category)
		}
		if trip.Budget != nil {
			fmt.Printf("  budget:    %.2f\n", *trip.Budget)
		}
		if trip.Rating != nil {
			fmt.Printf("  rating:    %d/5\n", *trip.Rating)
		}

		if len(photos) > 0 {
			fmt.Printf("\n  Photos (%d):\n", len(photos))
			for _, p := range photos {
				line := "    " + p.URI
				if p.Caption != nil {
					line += " - " + *p.Caption
				}
				fmt.Println(line)
			}
		}
		if len(notes) > 0 {
			fmt.Printf("\n  Notes (%d):\n", len(notes))
			for _, n := range notes {
				fmt.Printf("    [%s] %s\n", n.CreatedAt.Format("2006-01-02 15:04"), n.Content)
			}
		}

		if showTrack {
			points, err := store.LocationsByTrip(trip.ID)
			if err != nil {
				return err
			}
			fmt.Printf("\n  Track (%d points):\n", len(points))
			for _, p := range points {
				fmt.Printf("    %s\n", ui.FormatWaypoint(p))
			}
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showTrack, "track", false, "include every recorded waypoint")
	rootCmd.AddCommand(showCmd)
}
