package main

import (
	"alcyxob/workout-map/internal/api"
	"alcyxob/workout-map/internal/config"
	"alcyxob/workout-map/internal/geo"
	"alcyxob/workout-map/internal/service"
	"alcyxob/workout-map/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Workout Map API
// @version 1.0
// @description Records running and cycling workouts at points picked on a map.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	log.Println("Starting Workout Map Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Flat Store ---
	log.Printf("Opening %s flat store...", cfg.Storage.Driver)
	flat, closeStore, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not open flat store: %v", err)
	}
	defer closeStore()

	// --- Geolocation ---
	// Without a fixed position the browser reports one through /api/v1/position.
	var locator service.Geolocator
	if cfg.Map.FixedPosition {
		log.Printf("Using fixed map position %.5f,%.5f", cfg.Map.Latitude, cfg.Map.Longitude)
		locator = geo.NewFixed(cfg.Map.Latitude, cfg.Map.Longitude)
	}

	// --- Initialize Services ---
	log.Println("Initializing tracker...")
	view := api.NewViewRecorder()
	tracker := service.NewTrackerService(view, view, locator, flat, service.Options{
		Key:       cfg.Storage.Key,
		ZoomLevel: cfg.Map.ZoomLevel,
	})

	// Restore the saved list before any request can add to it.
	tracker.Start(context.Background())
	log.Printf("Restored workouts: %d (%s)", len(tracker.Workouts()), tracker.State())
	view.Drain()

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, api.NewWorkoutHandler(tracker, view))

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
