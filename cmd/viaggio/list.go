// ABOUTME: List command, shows trips newest first
// ABOUTME: Supports filtering by type and start date range

package main

import (
	"fmt"
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/dmarchetti/viaggio/internal/ui"
	"github.com/spf13/cobra"
)

var (
	listType string
	listFrom string
	listTo   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trips",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var trips []*models.Trip
		var err error

		switch {
		case listType != "":
			tripType, perr := models.ParseTripType(listType)
			if perr != nil {
				return perr
			}
			trips, err = store.TripsByType(tripType)
		case listFrom != "" || listTo != "":
			from := time.Time{}
			to := time.Now()
			if listFrom != "" {
				if from, err = parseTimeFlag(listFrom); err != nil {
					return err
				}
			}
			if listTo != "" {
				if to, err = parseTimeFlag(listTo); err != nil {
					return err
				}
			}
			trips, err = store.TripsInRange(from, to)
		default:
			trips, err = store.ListTrips()
		}
		if err != nil {
			return fmt.Errorf("failed to list trips: %w", err)
		}

		if len(trips) == 0 {
			fmt.Println("No trips recorded")
			return nil
		}
		for _, trip := range trips {
			fmt.Println(ui.FormatTrip(trip))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by trip type")
	listCmd.Flags().StringVar(&listFrom, "from", "", "only trips started on or after this date")
	listCmd.Flags().StringVar(&listTo, "to", "", "only trips started on or before this date")
	rootCmd.AddCommand(listCmd)
}
