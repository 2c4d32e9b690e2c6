package cli

import (
	"context"
	"fmt"

	"alcyxob/workout-map/internal/config"
	"alcyxob/workout-map/internal/repository"
	"alcyxob/workout-map/internal/storage"

	"github.com/spf13/cobra"
)

var (
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "workoutctl",
	Short: "Inspect and manage saved map workouts",
	Long: `workoutctl works on the same saved workout list as the workout map server.

It reads config.yaml and the environment the same way the server does, so
STORAGE_DRIVER and friends pick the flat store it opens.

EXAMPLES:
  # Show every saved workout
  workoutctl list

  # Record a run at a point on the map
  workoutctl add running --lat 38.72 --lng -9.14 --distance 5.2 --duration 24 --cadence 178

  # Delete every saved workout without asking
  workoutctl reset --force`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory holding config.yaml")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(resetCmd)
}

// openStore loads the config and opens the flat store it names.
func openStore(ctx context.Context) (config.Config, repository.FlatStore, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("load config: %w", err)
	}
	flat, closeFn, err := storage.Open(ctx, cfg)
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, flat, closeFn, nil
}
