// ABOUTME: Stats command, overall and per-type travel statistics
// ABOUTME: Always computed live from the store

package main

import (
	"fmt"

	"github.com/dmarchetti/viaggio/internal/stats"
	"github.com/dmarchetti/viaggio/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show travel statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		agg := stats.NewAggregator(store)

		summary, err := agg.Summary()
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		bold := color.New(color.Bold)
		bold.Println("Overall")
		fmt.Printf("  trips:          %d\n", summary.TripCount)
		fmt.Printf("  total distance: %s\n", ui.FormatDistance(summary.TotalKM))
		fmt.Printf("  avg distance:   %s\n", ui.FormatDistance(summary.AverageKM))
		fmt.Printf("  photos:         %d\n", summary.PhotoCount)
		if summary.AverageRating > 0 {
			fmt.Printf("  avg rating:     %.1f/5\n", summary.AverageRating)
		}

		byType, err := agg.ByType()
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		fmt.Println()
		bold.Println("By type")
		for _, ts := range byType {
			if ts.Count == 0 {
				continue
			}
			fmt.Printf("  %s %-16s %3d trips  %10s  (avg %s)\n",
				ui.TypeIcon(ts.Type), ui.TypeName(ts.Type), ts.Count,
				ui.FormatDistance(ts.TotalKM), ui.FormatDistance(ts.AverageKM))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
