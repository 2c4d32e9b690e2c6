package cli

import (
	"fmt"

	"alcyxob/workout-map/internal/service"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved workouts",
	Long: `Display every saved workout in the order it was recorded.

Each entry shows its description and id followed by distance, duration and
the type-specific pace or speed line.

EXAMPLES:
  # List all workouts
  workoutctl list`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, flat, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	view := newConsoleView(cmd.OutOrStdout())
	tracker := service.NewTrackerService(view, view, nil, flat, service.Options{
		Key:       cfg.Storage.Key,
		ZoomLevel: cfg.Map.ZoomLevel,
	})
	tracker.Start(ctx)

	if tracker.State() != service.StatePopulated || view.cards == 0 {
		view.info("No saved workouts")
		return nil
	}
	view.info("")
	view.info(fmt.Sprintf("Total workouts: %d", view.cards))
	return nil
}
