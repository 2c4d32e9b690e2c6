package domain

import (
	"errors"
	"time"
)

var (
	ErrUnknownType    = errors.New("unknown workout type")
	ErrMissingVariant = errors.New("record is missing variant fields")
)

// Record is the persisted shape of a workout. It is plain data: a decoded
// Record is not a Workout and carries none of its behaviour.
type Record struct {
	ID          string      `json:"id"`
	Date        time.Time   `json:"date"`
	Coords      Coords      `json:"coords"`
	Distance    float64     `json:"distance"`
	Duration    float64     `json:"duration"`
	Type        WorkoutType `json:"type"`
	Clicks      int         `json:"clicks"`
	Description string      `json:"description"`

	// --- Running-only ---
	Cadence *float64 `json:"cadence,omitempty"`
	Pace    *float64 `json:"pace,omitempty"`

	// --- Cycling-only ---
	ElevationGain *float64 `json:"elevationGain,omitempty"`
	Speed         *float64 `json:"speed,omitempty"`
}

// Record returns the record itself so stored records and live workouts can
// sit in the same list.
func (r Record) Record() Record {
	return r
}

// Record snapshots every data attribute of w, derived fields included.
func (w *Workout) Record() Record {
	rec := Record{
		ID:          w.ID,
		Date:        w.Date,
		Coords:      w.Coords,
		Distance:    w.Distance,
		Duration:    w.Duration,
		Type:        w.Type,
		Clicks:      w.Clicks,
		Description: w.Description,
	}
	if w.Running != nil {
		cadence, pace := w.Running.Cadence, w.Running.Pace
		rec.Cadence, rec.Pace = &cadence, &pace
	}
	if w.Cycling != nil {
		elevation, speed := w.Cycling.ElevationGain, w.Cycling.Speed
		rec.ElevationGain, rec.Speed = &elevation, &speed
	}
	return rec
}

// Reconstruct turns a stored record back into a live Workout. Stored values
// win over recomputation: the derived metric and the description are copied,
// not re-derived.
func Reconstruct(r Record) (*Workout, error) {
	w := &Workout{
		ID:          r.ID,
		Date:        r.Date,
		Coords:      r.Coords,
		Distance:    r.Distance,
		Duration:    r.Duration,
		Description: r.Description,
		Clicks:      r.Clicks,
		Type:        r.Type,
	}
	switch r.Type {
	case WorkoutRunning:
		if r.Cadence == nil || r.Pace == nil {
			return nil, ErrMissingVariant
		}
		w.Running = &RunningDetails{Cadence: *r.Cadence, Pace: *r.Pace}
	case WorkoutCycling:
		if r.ElevationGain == nil || r.Speed == nil {
			return nil, ErrMissingVariant
		}
		w.Cycling = &CyclingDetails{ElevationGain: *r.ElevationGain, Speed: *r.Speed}
	default:
		return nil, ErrUnknownType
	}
	return w, nil
}
