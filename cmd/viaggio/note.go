// ABOUTME: Note command group, attaches free-text notes to trips
// ABOUTME: Notes can carry an optional geotag

package main

import (
	"fmt"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	noteLat float64
	noteLng float64
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage trip notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <content> [trip-id]",
	Short: "Add a note to a trip (active trip by default)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := tripFromArgs(args[1:])
		if err != nil {
			return err
		}

		note := models.NewNote(trip.ID, args[0])
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			if err := models.ValidateCoordinates(noteLat, noteLng); err != nil {
				return err
			}
			note.Latitude = &noteLat
			note.Longitude = &noteLng
		}

		if err := store.AddNote(note); err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}
		fmt.Printf("%s Note added to %s\n", color.GreenString("✓"), trip.Destination)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list [trip-id]",
	Short: "List a trip's notes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := tripFromArgs(args)
		if err != nil {
			return err
		}
		notes, err := store.NotesByTrip(trip.ID)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Printf("No notes for %s\n", trip.Destination)
			return nil
		}
		for _, n := range notes {
			line := fmt.Sprintf("[%s] %s", n.CreatedAt.Format("2006-01-02 15:04"), n.Content)
			if n.Latitude != nil && n.Longitude != nil {
				line += fmt.Sprintf(" (%.4f, %.4f)", *n.Latitude, *n.Longitude)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteNote(id); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		fmt.Printf("%s Note deleted\n", color.GreenString("✓"))
		return nil
	},
}

func init() {
	noteAddCmd.Flags().Float64Var(&noteLat, "lat", 0, "note latitude")
	noteAddCmd.Flags().Float64Var(&noteLng, "lng", 0, "note longitude")
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteRmCmd)
	rootCmd.AddCommand(noteCmd)
}
