package domain

import (
	"time"
)

// WorkoutType is the discriminator of the workout variants.
type WorkoutType string

// Define constants for the supported variants
const (
	WorkoutRunning WorkoutType = "running"
	WorkoutCycling WorkoutType = "cycling"
)

// Valid reports whether t names a known variant.
func (t WorkoutType) Valid() bool {
	return t == WorkoutRunning || t == WorkoutCycling
}

// Coords is a [latitude, longitude] pair. Serialized as a two element array.
type Coords [2]float64

// Lat returns the latitude.
func (c Coords) Lat() float64 { return c[0] }

// Lng returns the longitude.
func (c Coords) Lng() float64 { return c[1] }

// RunningDetails is the running-only payload.
type RunningDetails struct {
	Cadence float64 // steps/min
	Pace    float64 // min/km, derived
}

// CyclingDetails is the cycling-only payload.
type CyclingDetails struct {
	ElevationGain float64 // meters, may be zero or negative
	Speed         float64 // km/h, derived
}

// Workout is a single recorded activity.
// Exactly one of Running / Cycling is set, matching Type.
type Workout struct {
	ID          string
	Date        time.Time
	Coords      Coords
	Distance    float64 // km
	Duration    float64 // min
	Description string
	Clicks      int
	Type        WorkoutType

	Running *RunningDetails
	Cycling *CyclingDetails
}

// NewRunning builds a running workout. Inputs are not validated here;
// that is the caller's job.
func NewRunning(id string, date time.Time, coords Coords, distance, duration, cadence float64) *Workout {
	w := &Workout{
		ID:       id,
		Date:     date,
		Coords:   coords,
		Distance: distance,
		Duration: duration,
		Type:     WorkoutRunning,
		Running:  &RunningDetails{Cadence: cadence},
	}
	w.init()
	return w
}

// NewCycling builds a cycling workout. Inputs are not validated here.
func NewCycling(id string, date time.Time, coords Coords, distance, duration, elevationGain float64) *Workout {
	w := &Workout{
		ID:       id,
		Date:     date,
		Coords:   coords,
		Distance: distance,
		Duration: duration,
		Type:     WorkoutCycling,
		Cycling:  &CyclingDetails{ElevationGain: elevationGain},
	}
	w.init()
	return w
}

// init fills the derived fields. Runs exactly once per entity.
func (w *Workout) init() {
	metric := w.ComputeMetric()
	switch w.Type {
	case WorkoutRunning:
		w.Running.Pace = metric
	case WorkoutCycling:
		w.Cycling.Speed = metric
	}
	w.Description = Describe(w.Type, w.Date)
}

// ComputeMetric evaluates the variant's derived metric from the current base
// fields: pace for running, speed for cycling. It never writes to w.
func (w *Workout) ComputeMetric() float64 {
	switch w.Type {
	case WorkoutRunning:
		return Pace(w.Distance, w.Duration)
	case WorkoutCycling:
		return Speed(w.Distance, w.Duration)
	}
	return 0
}

// Metric returns the derived metric cached at construction.
func (w *Workout) Metric() float64 {
	switch {
	case w.Running != nil:
		return w.Running.Pace
	case w.Cycling != nil:
		return w.Cycling.Speed
	}
	return 0
}

// Describe returns the label cached at construction, e.g. "Running on April 14".
func (w *Workout) Describe() string {
	return w.Description
}

// Click records one interaction with the workout.
func (w *Workout) Click() {
	w.Clicks++
}
