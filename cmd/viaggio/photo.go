// ABOUTME: Photo command group, attaches photo references to trips
// ABOUTME: Stores URIs, not image bytes; geotag and caption are optional

package main

import (
	"fmt"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	photoLat     float64
	photoLng     float64
	photoCaption string
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage trip photos",
}

var photoAddCmd = &cobra.Command{
	Use:   "add <uri> [trip-id]",
	Short: "Attach a photo to a trip (active trip by default)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := tripFromArgs(args[1:])
		if err != nil {
			return err
		}

		var caption *string
		if photoCaption != "" {
			caption = &photoCaption
		}
		photo := models.NewPhoto(trip.ID, args[0], caption)
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			if err := models.ValidateCoordinates(photoLat, photoLng); err != nil {
				return err
			}
			photo.Latitude = &photoLat
			photo.Longitude = &photoLng
		}

		if err := store.AddPhoto(photo); err != nil {
			return fmt.Errorf("failed to add photo: %w", err)
		}
		fmt.Printf("%s Photo added to %s\n", color.GreenString("✓"), trip.Destination)
		return nil
	},
}

var photoListCmd = &cobra.Command{
	Use:   "list [trip-id]",
	Short: "List a trip's photos",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := tripFromArgs(args)
		if err != nil {
			return err
		}
		photos, err := store.PhotosByTrip(trip.ID)
		if err != nil {
			return err
		}
		if len(photos) == 0 {
			fmt.Printf("No photos for %s\n", trip.Destination)
			return nil
		}
		for _, p := range photos {
			line := p.URI
			if p.Caption != nil {
				line += " - " + *p.Caption
			}
			if p.Latitude != nil && p.Longitude != nil {
				line += fmt.Sprintf(" (%.4f, %.4f)", *p.Latitude, *p.Longitude)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var photoRmCmd = &cobra.Command{
	Use:   "rm <photo-id>",
	Short: "Delete a photo reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := store.DeletePhoto(id); err != nil {
			return fmt.Errorf("failed to delete photo: %w", err)
		}
		fmt.Printf("%s Photo deleted\n", color.GreenString("✓"))
		return nil
	},
}

func init() {
	photoAddCmd.Flags().Float64Var(&photoLat, "lat", 0, "photo latitude")
	photoAddCmd.Flags().Float64Var(&photoLng, "lng", 0, "photo longitude")
	photoAddCmd.Flags().StringVarP(&photoCaption, "caption", "c", "", "photo caption")
	photoCmd.AddCommand(photoAddCmd)
	photoCmd.AddCommand(photoListCmd)
	photoCmd.AddCommand(photoRmCmd)
	rootCmd.AddCommand(photoCmd)
}
