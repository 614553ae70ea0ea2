// ABOUTME: Backup and restore commands, full-database YAML dumps
// ABOUTME: Restore preserves which trip was active in the dump

package main

import (
	"fmt"
	"os"

	"github.com/dmarchetti/viaggio/internal/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var backupOutput string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Dump every trip, waypoint, photo and note to YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := storage.ExportToYAML(store)
		if err != nil {
			return fmt.Errorf("failed to build backup: %w", err)
		}

		if backupOutput == "" || backupOutput == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(backupOutput, data, 0600); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
		fmt.Printf("%s Backup written to %s\n", color.GreenString("✓"), backupOutput)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore trips from a YAML backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}

		restored, err := storage.ImportFromYAML(store, data)
		if err != nil {
			return fmt.Errorf("failed to restore backup: %w", err)
		}

		logger.Info().Int("trips", restored).Msg("backup restored")
		fmt.Printf("%s Restored %d trips from %s\n", color.GreenString("✓"), restored, args[0])
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
