// ABOUTME: Export command, writes a trip's track as GeoJSON
// ABOUTME: Output goes to stdout or a file

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmarchetti/viaggio/internal/geojson"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportOutput      string
	exportAnnotations bool
)

var exportCmd = &cobra.Command{
	Use:   "export <trip-id>",
	Short: "Export a trip's track as GeoJSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := resolveTrip(args[0])
		if err != nil {
			return err
		}

		points, err := store.LocationsByTrip(trip.ID)
		if err != nil {
			return err
		}
		fc := geojson.TripTrack(trip, points)

		if exportAnnotations {
			photos, err := store.PhotosByTrip(trip.ID)
			if err != nil {
				return err
			}
			notes, err := store.NotesByTrip(trip.ID)
			if err != nil {
				return err
			}
			annotations := geojson.TripAnnotations(photos, notes)
			fc.Features = append(fc.Features, annotations.Features...)
		}

		data, err := json.MarshalIndent(fc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode GeoJSON: %w", err)
		}
		data = append(data, '\n')

		if exportOutput == "" || exportOutput == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("%s Exported %s to %s\n", color.GreenString("✓"), trip.Destination, exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportAnnotations, "annotations", false, "include geotagged photos and notes")
	rootCmd.AddCommand(exportCmd)
}
