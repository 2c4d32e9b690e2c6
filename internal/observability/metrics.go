package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_map",
		Subsystem: "workouts",
		Name:      "created_total",
		Help:      "Workouts recorded, by type.",
	}, []string{"type"})
	validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_map",
		Subsystem: "workouts",
		Name:      "validation_failures_total",
		Help:      "Form submissions rejected by input validation, by type.",
	}, []string{"type"})
	persistWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_map",
		Subsystem: "persistence",
		Name:      "writes_total",
		Help:      "Writes of the workout list to the flat store, by result.",
	}, []string{"result"})
	rehydrated = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_map",
		Subsystem: "persistence",
		Name:      "rehydrated_workouts",
		Help:      "Records restored from the flat store at the last startup.",
	})
	resets = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_map",
		Subsystem: "persistence",
		Name:      "resets_total",
		Help:      "Reset operations that cleared persisted state.",
	})
)

func init() {
	prometheus.MustRegister(workoutsCreated, validationFailures, persistWrites, rehydrated, resets)
}

// RecordWorkoutCreated counts one accepted workout.
func RecordWorkoutCreated(workoutType string) {
	workoutsCreated.WithLabelValues(workoutType).Inc()
}

// RecordValidationFailure counts one rejected submission.
func RecordValidationFailure(workoutType string) {
	validationFailures.WithLabelValues(workoutType).Inc()
}

// RecordPersist counts a flat-store write.
func RecordPersist(err error) {
	if err != nil {
		persistWrites.WithLabelValues("error").Inc()
		return
	}
	persistWrites.WithLabelValues("ok").Inc()
}

// RecordRehydrated sets the restored-records gauge.
func RecordRehydrated(n int) {
	rehydrated.Set(float64(n))
}

// RecordReset counts one reset.
func RecordReset() {
	resets.Inc()
}
