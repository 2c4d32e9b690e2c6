package cli

import (
	"errors"
	"fmt"

	"alcyxob/workout-map/internal/domain"
	"alcyxob/workout-map/internal/service"

	"github.com/spf13/cobra"
)

var (
	addLat       float64
	addLng       float64
	addDistance  string
	addDuration  string
	addCadence   string
	addElevation string
)

var addCmd = &cobra.Command{
	Use:   "add <running|cycling>",
	Short: "Record a workout at a map position",
	Long: `Record a workout as if the map had been clicked at --lat/--lng.

Distance is in km and duration in minutes. Running needs --cadence (steps per
minute), cycling takes --elevation (metres, may be zero or negative).

EXAMPLES:
  # A 5.2 km run
  workoutctl add running --lat 38.72 --lng -9.14 --distance 5.2 --duration 24 --cadence 178

  # A 27 km ride
  workoutctl add cycling --lat 38.70 --lng -9.40 --distance 27 --duration 95 --elevation 500`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().Float64Var(&addLat, "lat", 0, "latitude of the workout")
	addCmd.Flags().Float64Var(&addLng, "lng", 0, "longitude of the workout")
	addCmd.Flags().StringVarP(&addDistance, "distance", "d", "", "distance in km")
	addCmd.Flags().StringVarP(&addDuration, "duration", "t", "", "duration in minutes")
	addCmd.Flags().StringVar(&addCadence, "cadence", "", "running cadence in steps per minute")
	addCmd.Flags().StringVar(&addElevation, "elevation", "", "cycling elevation gain in metres")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, flat, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	at := domain.Coords{addLat, addLng}
	view := newConsoleView(cmd.OutOrStdout())
	tracker := service.NewTrackerService(view, view, nil, flat, service.Options{
		Key:       cfg.Storage.Key,
		ZoomLevel: cfg.Map.ZoomLevel,
	})
	tracker.Start(ctx)
	tracker.LoadMap(ctx, at)
	if err := tracker.HandleMapClick(at); err != nil {
		return err
	}

	workout, err := tracker.SubmitWorkout(ctx, service.FormInput{
		Type:      args[0],
		Distance:  addDistance,
		Duration:  addDuration,
		Cadence:   addCadence,
		Elevation: addElevation,
	})
	if err != nil {
		if errors.Is(err, service.ErrPersistFailed) {
			return fmt.Errorf("workout %s was not saved: %w", workout.ID, err)
		}
		return err
	}

	unit := "min/km"
	if workout.Type == domain.WorkoutCycling {
		unit = "km/h"
	}
	view.success(fmt.Sprintf("Saved %s (%.1f %s)", workout.Describe(), workout.Metric(), unit))
	return nil
}
