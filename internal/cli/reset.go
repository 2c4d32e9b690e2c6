package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"alcyxob/workout-map/internal/codec"
	"alcyxob/workout-map/internal/repository"
	"alcyxob/workout-map/internal/service"

	"github.com/spf13/cobra"
)

var (
	force bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every saved workout",
	Long: `Remove the saved workout list from the flat store.

Running it again on an empty store changes nothing.

WARNING: This cannot be undone! All workouts will be lost.

EXAMPLES:
  # Reset with confirmation prompt
  workoutctl reset

  # Force reset without confirmation
  workoutctl reset --force`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, flat, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	key := cfg.Storage.Key
	if key == "" {
		key = codec.Key
	}
	out := newConsoleView(cmd.OutOrStdout())

	// Only a key that is really absent skips the prompt. A read failure says
	// nothing about what is stored.
	_, readErr := flat.Get(ctx, key)
	absent := errors.Is(readErr, repository.ErrNotFound)
	if readErr != nil && !absent {
		out.Alert(fmt.Sprintf("Could not read saved workouts: %v", readErr))
	}

	view := newConsoleView(io.Discard)
	tracker := service.NewTrackerService(view, view, nil, flat, service.Options{
		Key:       cfg.Storage.Key,
		ZoomLevel: cfg.Map.ZoomLevel,
	})
	tracker.Start(ctx)

	if readErr == nil {
		out.info(fmt.Sprintf("Saved workouts: %d", len(tracker.Workouts())))
	} else if absent {
		out.info("Saved workouts: 0")
	}

	// Confirm unless forced
	if !force && !absent {
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to reset? All workouts will be lost.") {
			out.info("Reset cancelled")
			return nil
		}
	}

	if err := tracker.Reset(ctx); err != nil {
		return fmt.Errorf("failed to clear saved workouts: %w", err)
	}
	out.success("Reset complete")
	return nil
}

func confirm(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s (y/n): ", message)
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
