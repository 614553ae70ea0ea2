// ABOUTME: Create command, starts a new trip and makes it active
// ABOUTME: Any previously active trip is deactivated in the same transaction

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/dmarchetti/viaggio/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	createType        string
	createStart       string
	createDescription string
	createCategory    string
	createBudget      float64
	createRating      int
)

var createCmd = &cobra.Command{
	Use:   "create <destination>",
	Short: "Create a new trip and make it active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		destination := args[0]
		if err := models.ValidateDestination(destination); err != nil {
			return err
		}

		tripType, err := models.ParseTripType(createType)
		if err != nil {
			return fmt.Errorf("%w (one of: %s)", err, strings.Join(tripTypeNames(), ", "))
		}

		startedAt := time.Now()
		if createStart != "" {
			if startedAt, err = parseTimeFlag(createStart); err != nil {
				return err
			}
		}
		trip := models.NewTrip(destination, tripType, startedAt)
		if createDescription != "" {
			trip.Description = &createDescription
		}
		if createCategory != "" {
			trip.Category = &createCategory
		}
		if cmd.Flags().Changed("budget") {
			if err := models.ValidateBudget(createBudget); err != nil {
				return err
			}
			trip.Budget = &createBudget
		}
		if cmd.Flags().Changed("rating") {
			if err := models.ValidateRating(createRating); err != nil {
				return err
			}
			trip.Rating = &createRating
		}

		if err := store.CreateTrip(trip); err != nil {
			return fmt.Errorf("failed to create trip: %w", err)
		}

		logger.Info().Stringer("trip_id", trip.ID).Str("destination", trip.Destination).Msg("trip created")
		fmt.Printf("%s Created %s %s (now active)\n",
			color.GreenString("✓"),
			ui.TypeIcon(trip.Type),
			color.CyanString(trip.Destination))
		fmt.Printf("  id: %s\n", trip.ID)
		return nil
	},
}

func tripTypeNames() []string {
	types := models.TripTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

func init() {
	createCmd.Flags().StringVarP(&createType, "type", "t", "local", "trip type")
	createCmd.Flags().StringVar(&createStart, "start", "", "start time (default now)")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "trip description")
	createCmd.Flags().StringVar(&createCategory, "category", "", "trip category")
	createCmd.Flags().Float64Var(&createBudget, "budget", 0, "trip budget")
	createCmd.Flags().IntVar(&createRating, "rating", 0, "trip rating (1-5)")
	rootCmd.AddCommand(createCmd)
}
