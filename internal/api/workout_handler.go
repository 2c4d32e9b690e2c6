package api

import (
	"alcyxob/workout-map/internal/domain"
	"alcyxob/workout-map/internal/service"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler bridges browser events to the tracker. The tracker handles
// one event at a time, so every handler holds mu for the whole call.
type WorkoutHandler struct {
	mu      sync.Mutex
	tracker service.TrackerService
	view    *ViewRecorder
}

// NewWorkoutHandler creates a new WorkoutHandler. view must be the recorder
// the tracker was built with.
func NewWorkoutHandler(tracker service.TrackerService, view *ViewRecorder) *WorkoutHandler {
	return &WorkoutHandler{tracker: tracker, view: view}
}

// --- DTOs for API ---

// PositionRequest is a coordinate pair reported by the browser.
type PositionRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

func (p PositionRequest) coords() domain.Coords {
	return domain.Coords{*p.Lat, *p.Lng}
}

// PositionErrorRequest carries the browser's geolocation failure, if any.
type PositionErrorRequest struct {
	Message string `json:"message"`
}

// SessionResponse is the state of the page after an event.
type SessionResponse struct {
	State    service.StartupState `json:"state"`
	MapReady bool                 `json:"mapReady"`
	Commands []ViewCommand        `json:"commands"`
}

// WorkoutResponse is returned when a workout is created.
type WorkoutResponse struct {
	Workout  domain.Record `json:"workout"`
	Commands []ViewCommand `json:"commands"`
}

// WorkoutListResponse lists every workout in list order.
type WorkoutListResponse struct {
	Workouts []domain.Record `json:"workouts"`
}

// --- Handler Methods ---

// StartSession runs the page load: restore the list and, with a server-side
// geolocator, place the map.
// @Router /api/v1/session [post]
func (h *WorkoutHandler) StartSession(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.tracker.Start(c.Request.Context())
	c.JSON(http.StatusOK, h.session())
}

// ReportPosition loads the map at the position the browser found.
// @Router /api/v1/position [post]
func (h *WorkoutHandler) ReportPosition(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.tracker.LoadMap(c.Request.Context(), req.coords())
	c.JSON(http.StatusOK, h.session())
}

// ReportPositionError tells the tracker the browser could not locate the user.
// @Router /api/v1/position/error [post]
func (h *WorkoutHandler) ReportPositionError(c *gin.Context) {
	var req PositionErrorRequest
	// The body is optional.
	_ = c.ShouldBindJSON(&req)
	if req.Message == "" {
		req.Message = "position unavailable"
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.tracker.PositionFailed(errors.New(req.Message))
	c.JSON(http.StatusOK, h.session())
}

// MapClick records where the user clicked and opens the form.
// @Router /api/v1/map/clicks [post]
func (h *WorkoutHandler) MapClick(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.tracker.HandleMapClick(req.coords()); err != nil {
		h.view.Drain()
		abortWithError(c, http.StatusConflict, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.session())
}

// CreateWorkout submits the form.
// @Success 201 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "No map location selected"
// @Failure 500 {object} gin.H "Workout added but not persisted"
// @Router /api/v1/workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req service.FormInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	workout, err := h.tracker.SubmitWorkout(c.Request.Context(), req)
	commands := h.view.Drain()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrUnknownWorkoutType):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "commands": commands})
		case errors.Is(err, service.ErrNoMapClick):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrPersistFailed):
			log.Printf("ERROR: Workout %s kept in memory only: %v", workout.ID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":    "Workout added but could not be saved",
				"workout":  workout.Record(),
				"commands": commands,
			})
		default:
			log.Printf("ERROR: Unexpected error creating workout: %v", err)
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	c.JSON(http.StatusCreated, WorkoutResponse{Workout: workout.Record(), Commands: commands})
}

// ListWorkouts returns the workout list.
// @Router /api/v1/workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ensureSession(c)
	h.view.Drain()
	c.JSON(http.StatusOK, WorkoutListResponse{Workouts: h.tracker.Workouts()})
}

// SelectWorkout pans the map to a workout picked from the list.
// @Router /api/v1/workouts/{id}/select [post]
func (h *WorkoutHandler) SelectWorkout(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	defer h.mu.Unlock()

	h.ensureSession(c)
	if err := h.tracker.SelectWorkout(id); err != nil {
		h.view.Drain()
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusConflict, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, h.session())
}

// Reset deletes every persisted workout and reloads the page state.
// @Router /api/v1/reset [post]
func (h *WorkoutHandler) Reset(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.tracker.Reset(c.Request.Context()); err != nil {
		h.view.Drain()
		abortWithError(c, http.StatusInternalServerError, "Could not clear saved workouts")
		return
	}
	c.JSON(http.StatusOK, h.session())
}

// ensureSession runs startup for a request that arrives before the page
// load. Must be called with mu held.
func (h *WorkoutHandler) ensureSession(c *gin.Context) {
	if h.tracker.State() == service.StateNoData {
		h.tracker.Start(c.Request.Context())
	}
}

// session must be called with mu held.
func (h *WorkoutHandler) session() SessionResponse {
	return SessionResponse{
		State:    h.tracker.State(),
		MapReady: h.tracker.MapReady(),
		Commands: h.view.Drain(),
	}
}
