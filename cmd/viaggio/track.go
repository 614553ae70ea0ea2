// ABOUTME: Track command, runs a live tracking session over a fix stream
// ABOUTME: Reads JSON-lines fixes from a file or stdin until EOF or interrupt

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmarchetti/viaggio/internal/session"
	"github.com/dmarchetti/viaggio/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	trackInput string
	trackPace  bool
)

var trackCmd = &cobra.Command{
	Use:   "track [trip-id]",
	Short: "Track a trip from a stream of GPS fixes",
	Long: `Track starts a tracking session for a trip (the active trip by default)
and feeds it fixes from a JSON-lines stream, one fix per line:

  {"latitude": 41.8902, "longitude": 12.4922, "recorded_at": "2026-08-30T09:00:00Z"}

Every accepted fix is persisted immediately. The session ends when the
stream does, or on Ctrl-C; either way the trip is stopped and its final
distance recomputed from the stored track.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := tripFromArgs(args)
		if err != nil {
			return err
		}

		var input io.Reader = os.Stdin
		if trackInput != "" && trackInput != "-" {
			f, err := os.Open(trackInput)
			if err != nil {
				return fmt.Errorf("failed to open fix stream: %w", err)
			}
			defer f.Close()
			input = f
		}

		src := session.NewReplaySource(input)
		src.Pace = trackPace
		ctl := session.NewController(store, src, cfg.SessionOptions(), logger)

		if err := ctl.Start(trip.ID); err != nil {
			return fmt.Errorf("failed to start tracking: %w", err)
		}
		fmt.Printf("%s Tracking %s %s (Ctrl-C to stop)\n",
			color.GreenString("●"),
			ui.TypeIcon(trip.Type),
			color.CyanString(trip.Destination))

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case <-sigCh:
			fmt.Println()
		case <-ctl.Done():
		}

		if err := ctl.Stop(); err != nil {
			return fmt.Errorf("failed to stop tracking: %w", err)
		}

		trip, err = store.GetTrip(trip.ID)
		if err != nil {
			return err
		}
		st := ctl.Status()
		fmt.Printf("%s Stopped %s\n", color.GreenString("✓"), color.CyanString(trip.Destination))
		fmt.Printf("  waypoints: %d\n", st.Waypoints)
		fmt.Printf("  distance:  %s\n", ui.FormatDistance(trip.DistanceKM))
		return nil
	},
}

func init() {
	trackCmd.Flags().StringVarP(&trackInput, "input", "i", "", "fix stream file (default stdin)")
	trackCmd.Flags().BoolVar(&trackPace, "pace", false, "replay fixes at their recorded timing")
	rootCmd.AddCommand(trackCmd)
}
