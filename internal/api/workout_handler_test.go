package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"alcyxob/workout-map/internal/repository"
	"alcyxob/workout-map/internal/repository/fs"
	"alcyxob/workout-map/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterOn(t, fs.NewMemoryFlatStore())
}

func newTestRouterOn(t *testing.T, flat repository.FlatStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	view := NewViewRecorder()
	tracker := service.NewTrackerService(view, view, nil, flat, service.Options{})
	router := gin.New()
	SetupRoutes(router, NewWorkoutHandler(tracker, view))
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func kinds(commands []ViewCommand) []string {
	out := make([]string, 0, len(commands))
	for _, c := range commands {
		out = append(out, c.Kind)
	}
	return out
}

var running = service.FormInput{Type: "running", Distance: "5.2", Duration: "24", Cadence: "178"}

func TestPing(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestRequestIDIsEchoed(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestSessionFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[SessionResponse](t, rec)
	assert.Equal(t, service.StateEmpty, session.State)
	assert.False(t, session.MapReady)
	assert.Empty(t, session.Commands)

	rec = do(t, router, http.MethodPost, "/api/v1/position", gin.H{"lat": 38.7, "lng": -9.1})
	require.Equal(t, http.StatusOK, rec.Code)
	session = decode[SessionResponse](t, rec)
	assert.True(t, session.MapReady)
	require.Equal(t, []string{CommandSetView}, kinds(session.Commands))
	assert.Equal(t, 13, session.Commands[0].Zoom)

	rec = do(t, router, http.MethodPost, "/api/v1/map/clicks", gin.H{"lat": 39.0, "lng": -12.0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{CommandShowForm}, kinds(decode[SessionResponse](t, rec).Commands))

	rec = do(t, router, http.MethodPost, "/api/v1/workouts", running)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[WorkoutResponse](t, rec)
	assert.Equal(t, "running", string(created.Workout.Type))
	require.NotNil(t, created.Workout.Pace)
	assert.InDelta(t, 4.615384, *created.Workout.Pace, 1e-6)
	assert.Equal(t, []string{CommandMarker, CommandRender, CommandHideForm}, kinds(created.Commands))
	assert.Equal(t, "running-popup", created.Commands[0].Marker.ClassName)

	rec = do(t, router, http.MethodGet, "/api/v1/workouts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[WorkoutListResponse](t, rec)
	require.Len(t, list.Workouts, 1)
	assert.Equal(t, created.Workout.ID, list.Workouts[0].ID)

	rec = do(t, router, http.MethodPost, "/api/v1/workouts/"+created.Workout.ID+"/select", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	session = decode[SessionResponse](t, rec)
	require.Equal(t, []string{CommandSetView}, kinds(session.Commands))
	assert.True(t, session.Commands[0].Options.Animate)

	// Reload restores the list.
	rec = do(t, router, http.MethodPost, "/api/v1/session", nil)
	session = decode[SessionResponse](t, rec)
	assert.Equal(t, service.StatePopulated, session.State)
	assert.Equal(t, []string{CommandRender}, kinds(session.Commands))
}

func TestCreateWorkoutErrors(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/v1/session", nil)

	rec := do(t, router, http.MethodPost, "/api/v1/map/clicks", gin.H{"lat": 1.0, "lng": 2.0})
	assert.Equal(t, http.StatusConflict, rec.Code, "click before the map loads")

	rec = do(t, router, http.MethodPost, "/api/v1/workouts", running)
	assert.Equal(t, http.StatusConflict, rec.Code, "submit without a click")

	do(t, router, http.MethodPost, "/api/v1/position", gin.H{"lat": 0.0, "lng": 0.0})
	do(t, router, http.MethodPost, "/api/v1/map/clicks", gin.H{"lat": 1.0, "lng": 2.0})

	rec = do(t, router, http.MethodPost, "/api/v1/workouts", service.FormInput{Type: "running", Distance: "0", Duration: "24", Cadence: "178"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Commands []ViewCommand `json:"commands"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{CommandAlert}, kinds(body.Commands))
	assert.Equal(t, service.NoticeInvalidInput, body.Commands[0].Message)

	rec = do(t, router, http.MethodPost, "/api/v1/workouts", service.FormInput{Type: "rowing", Distance: "1", Duration: "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/workouts", nil)
	assert.Empty(t, decode[WorkoutListResponse](t, rec).Workouts)
}

func TestPositionValidation(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/api/v1/position", gin.H{"lat": 1.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPositionError(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/v1/session", nil)

	rec := do(t, router, http.MethodPost, "/api/v1/position/error", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[SessionResponse](t, rec)
	assert.False(t, session.MapReady)
	require.Equal(t, []string{CommandAlert}, kinds(session.Commands))
	assert.Equal(t, service.NoticeNoPosition, session.Commands[0].Message)
}

func TestSelectUnknownWorkout(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/v1/session", nil)
	rec := do(t, router, http.MethodPost, "/api/v1/workouts/0000000000/select", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReset(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/v1/session", nil)
	do(t, router, http.MethodPost, "/api/v1/position", gin.H{"lat": 0.0, "lng": 0.0})
	do(t, router, http.MethodPost, "/api/v1/map/clicks", gin.H{"lat": 1.0, "lng": 2.0})
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/workouts", running).Code)

	for i := 0; i < 2; i++ {
		rec := do(t, router, http.MethodPost, "/api/v1/reset", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, service.StateEmpty, decode[SessionResponse](t, rec).State)
	}

	rec := do(t, router, http.MethodGet, "/api/v1/workouts", nil)
	assert.Empty(t, decode[WorkoutListResponse](t, rec).Workouts)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "workout_map_")
}

// saveTwo records two workouts through one router and returns their ids.
func saveTwo(t *testing.T, flat repository.FlatStore) []string {
	t.Helper()
	router := newTestRouterOn(t, flat)
	do(t, router, http.MethodPost, "/api/v1/session", nil)
	do(t, router, http.MethodPost, "/api/v1/position", gin.H{"lat": 0.0, "lng": 0.0})

	var ids []string
	for i := 0; i < 2; i++ {
		do(t, router, http.MethodPost, "/api/v1/map/clicks", gin.H{"lat": 1.0, "lng": 2.0})
		rec := do(t, router, http.MethodPost, "/api/v1/workouts", running)
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[WorkoutResponse](t, rec).Workout.ID)
	}
	return ids
}

func TestSubmitBeforeSessionKeepsSavedWorkouts(t *testing.T) {
	flat := fs.NewMemoryFlatStore()
	saveTwo(t, flat)

	router := newTestRouterOn(t, flat)
	rec := do(t, router, http.MethodPost, "/api/v1/position", gin.H{"lat": 38.7, "lng": -9.1})
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[SessionResponse](t, rec)
	assert.Equal(t, service.StatePopulated, session.State)
	assert.Equal(t, []string{CommandRender, CommandRender, CommandSetView, CommandMarker, CommandMarker}, kinds(session.Commands))

	do(t, router, http.MethodPost, "/api/v1/map/clicks", gin.H{"lat": 39.0, "lng": -12.0})
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/workouts", running).Code)

	// A later page load still finds all three.
	rec = do(t, newTestRouterOn(t, flat), http.MethodGet, "/api/v1/workouts", nil)
	assert.Len(t, decode[WorkoutListResponse](t, rec).Workouts, 3)
}

func TestListAndSelectBeforeSession(t *testing.T) {
	flat := fs.NewMemoryFlatStore()
	ids := saveTwo(t, flat)

	router := newTestRouterOn(t, flat)
	rec := do(t, router, http.MethodGet, "/api/v1/workouts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[WorkoutListResponse](t, rec)
	require.Len(t, list.Workouts, 2)
	assert.Equal(t, ids[0], list.Workouts[0].ID)

	// Known id, but no map yet.
	rec = do(t, router, http.MethodPost, "/api/v1/workouts/"+ids[1]+"/select", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
