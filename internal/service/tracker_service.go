package service

import (
	"alcyxob/workout-map/internal/codec"
	"alcyxob/workout-map/internal/domain"
	"alcyxob/workout-map/internal/observability"
	"alcyxob/workout-map/internal/repository"
	"alcyxob/workout-map/internal/store"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// --- Error Definitions ---
var (
	ErrInvalidInput       = errors.New("inputs have to be positive numbers")
	ErrUnknownWorkoutType = errors.New("unknown workout type")
	ErrNoMapClick         = errors.New("no map location selected")
	ErrMapUnavailable     = errors.New("map is not available")
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrPersistFailed      = errors.New("failed to persist workouts")
)

// User-facing notices.
const (
	NoticeInvalidInput = "Inputs have to be positive numbers!"
	NoticeNoPosition   = "Could not get your position"
)

// DefaultZoomLevel is the map zoom used when none is configured.
const DefaultZoomLevel = 13

// --- Collaborators ---

// MapWidget is the external interactive map.
type MapWidget interface {
	SetView(center domain.Coords, zoom int, opts PanOptions)
	AddMarker(m Marker)
}

// FormView is the external form and workout list.
type FormView interface {
	ShowForm()
	HideForm()
	RenderWorkout(card WorkoutCard)
	Alert(message string)
}

// Geolocator is the platform position service.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (domain.Coords, error)
}

// StartupState is where startup left the workout list.
type StartupState string

const (
	StateNoData    StartupState = "no_data"
	StateEmpty     StartupState = "empty_store"
	StatePopulated StartupState = "populated_store"
)

// --- Service Interface ---

// TrackerService is the application controller. Every method runs on the
// caller's goroutine and none of them is safe for concurrent use: callers
// deliver one event at a time.
type TrackerService interface {
	// Start is the page load: restore the persisted list, then locate.
	Start(ctx context.Context)
	// LoadMap handles a successful geolocation.
	LoadMap(ctx context.Context, center domain.Coords)
	// PositionFailed handles a failed geolocation.
	PositionFailed(err error)
	HandleMapClick(at domain.Coords) error
	SubmitWorkout(ctx context.Context, in FormInput) (*domain.Workout, error)
	SelectWorkout(id string) error
	// Reset clears persisted state and reloads.
	Reset(ctx context.Context) error

	State() StartupState
	Workouts() []domain.Record
	MapReady() bool
}

// Options tunes a TrackerService. Zero values pick defaults.
type Options struct {
	Key       string
	ZoomLevel int
	Now       func() time.Time
}

// --- Service Implementation ---

// trackerService implements the TrackerService interface.
type trackerService struct {
	mapWidget MapWidget
	form      FormView
	locator   Geolocator // nil when the platform has no geolocation
	flat      repository.FlatStore

	key  string
	zoom int
	now  func() time.Time
	ids  *domain.IDGenerator

	workouts  *store.Workouts
	state     StartupState
	mapReady  bool
	lastClick *domain.Coords
}

// NewTrackerService creates the controller. locator may be nil.
func NewTrackerService(mapWidget MapWidget, form FormView, locator Geolocator, flat repository.FlatStore, opts Options) TrackerService {
	if opts.Key == "" {
		opts.Key = codec.Key
	}
	if opts.ZoomLevel <= 0 {
		opts.ZoomLevel = DefaultZoomLevel
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &trackerService{
		mapWidget: mapWidget,
		form:      form,
		locator:   locator,
		flat:      flat,
		key:       opts.Key,
		zoom:      opts.ZoomLevel,
		now:       opts.Now,
		ids:       domain.NewIDGenerator(opts.Now),
		workouts:  store.New(),
		state:     StateNoData,
	}
}

// Start restores the list first so the map, once loaded, can place a marker
// for every restored entry.
func (s *trackerService) Start(ctx context.Context) {
	s.workouts.Clear()
	s.state = StateNoData
	s.mapReady = false
	s.lastClick = nil

	s.restore(ctx)

	if s.locator == nil {
		return
	}
	pos, err := s.locator.CurrentPosition(ctx)
	if err != nil {
		s.PositionFailed(err)
		return
	}
	s.LoadMap(ctx, pos)
}

// restore rehydrates the list from the flat store. Records stay plain data:
// they are rendered from their stored fields and never turned back into
// live workouts.
func (s *trackerService) restore(ctx context.Context) {
	s.workouts.Clear()
	raw, err := s.flat.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("WARN: Could not read persisted workouts, starting empty: %v", err)
		}
		s.state = StateEmpty
		observability.RecordRehydrated(0)
		return
	}

	records, ok := codec.Decode(raw)
	if !ok {
		s.state = StateEmpty
		observability.RecordRehydrated(0)
		return
	}

	s.workouts.ReplaceAll(records)
	for _, r := range records {
		s.ids.Observe(r.ID)
	}
	s.state = StatePopulated
	observability.RecordRehydrated(len(records))
	for _, r := range records {
		s.form.RenderWorkout(NewWorkoutCard(r))
	}
}

// ensureRestored loads the saved list if startup has not run yet, so no event
// can extend or overwrite a list that was never read.
func (s *trackerService) ensureRestored(ctx context.Context) {
	if s.state == StateNoData {
		s.restore(ctx)
	}
}

func (s *trackerService) LoadMap(ctx context.Context, center domain.Coords) {
	s.ensureRestored(ctx)
	s.mapWidget.SetView(center, s.zoom, PanOptions{})
	s.mapReady = true
	for _, e := range s.workouts.All() {
		s.mapWidget.AddMarker(NewMarker(e.Record()))
	}
}

// PositionFailed leaves the map unavailable for the session. The list and
// persistence keep working.
func (s *trackerService) PositionFailed(err error) {
	log.Printf("WARN: Geolocation failed: %v", err)
	s.mapReady = false
	s.form.Alert(NoticeNoPosition)
}

func (s *trackerService) HandleMapClick(at domain.Coords) error {
	if !s.mapReady {
		return ErrMapUnavailable
	}
	s.lastClick = &at
	s.form.ShowForm()
	return nil
}

// SubmitWorkout validates the form and records the workout at the last map
// click. A rejected submission constructs nothing and leaves the list as it
// was. A persistence failure is reported after the workout has been added.
func (s *trackerService) SubmitWorkout(ctx context.Context, in FormInput) (*domain.Workout, error) {
	if s.lastClick == nil {
		return nil, ErrNoMapClick
	}
	s.ensureRestored(ctx)

	workoutType := domain.WorkoutType(strings.TrimSpace(in.Type))
	if !workoutType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkoutType, in.Type)
	}
	distance := parseNumber(in.Distance)
	duration := parseNumber(in.Duration)

	var workout *domain.Workout
	switch workoutType {
	case domain.WorkoutRunning:
		cadence := parseNumber(in.Cadence)
		if !allFinite(distance, duration, cadence) || !allPositive(distance, duration, cadence) {
			return nil, s.rejectInput(workoutType)
		}
		workout = domain.NewRunning(s.ids.Next(), s.now(), *s.lastClick, distance, duration, cadence)
	case domain.WorkoutCycling:
		// Elevation may be zero or negative; it only has to be a number.
		elevation := parseNumber(in.Elevation)
		if !allFinite(distance, duration, elevation) || !allPositive(distance, duration) {
			return nil, s.rejectInput(workoutType)
		}
		workout = domain.NewCycling(s.ids.Next(), s.now(), *s.lastClick, distance, duration, elevation)
	}

	s.workouts.Append(workout)
	observability.RecordWorkoutCreated(string(workout.Type))

	rec := workout.Record()
	s.mapWidget.AddMarker(NewMarker(rec))
	s.form.RenderWorkout(NewWorkoutCard(rec))
	s.form.HideForm()
	// The form is hidden again, so the next workout needs a fresh click.
	s.lastClick = nil

	if err := s.persist(ctx); err != nil {
		return workout, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return workout, nil
}

func (s *trackerService) rejectInput(t domain.WorkoutType) error {
	observability.RecordValidationFailure(string(t))
	s.form.Alert(NoticeInvalidInput)
	return ErrInvalidInput
}

func (s *trackerService) persist(ctx context.Context) error {
	raw, err := codec.Encode(s.workouts.All())
	if err == nil {
		err = s.flat.Set(ctx, s.key, raw)
	}
	observability.RecordPersist(err)
	if err != nil {
		log.Printf("ERROR: Failed to persist %d workouts: %v", s.workouts.Len(), err)
	}
	return err
}

// SelectWorkout pans the map to a workout picked from the list.
//
// Counting the interaction (Workout.Click) stays a deferred hook: entries
// restored from the flat store are plain records without that behaviour, so
// the count is not bumped for any entry rather than for some.
func (s *trackerService) SelectWorkout(id string) error {
	entry, ok := s.workouts.FindByID(id)
	if !ok {
		return ErrWorkoutNotFound
	}
	if !s.mapReady {
		return ErrMapUnavailable
	}
	s.mapWidget.SetView(entry.Record().Coords, s.zoom, PanOptions{Animate: true, PanDuration: 1})
	return nil
}

// Reset removes the persisted list and reloads. Running it again changes
// nothing further.
func (s *trackerService) Reset(ctx context.Context) error {
	if err := s.flat.Remove(ctx, s.key); err != nil {
		log.Printf("ERROR: Failed to remove persisted workouts: %v", err)
		return err
	}
	observability.RecordReset()
	log.Printf("INFO: Persisted workouts cleared, reloading")
	s.Start(ctx)
	return nil
}

func (s *trackerService) State() StartupState {
	return s.state
}

// Workouts returns the data of every entry, in list order.
func (s *trackerService) Workouts() []domain.Record {
	entries := s.workouts.All()
	out := make([]domain.Record, len(entries))
	for i, e := range entries {
		out[i] = e.Record()
	}
	return out
}

func (s *trackerService) MapReady() bool {
	return s.mapReady
}
