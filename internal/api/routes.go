package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(router *gin.Engine, workoutHandler *WorkoutHandler) {
	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/session", workoutHandler.StartSession)

		positionGroup := apiV1.Group("/position")
		{
			positionGroup.POST("", workoutHandler.ReportPosition)
			positionGroup.POST("/error", workoutHandler.ReportPositionError)
		}

		apiV1.POST("/map/clicks", workoutHandler.MapClick)

		workoutGroup := apiV1.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("/:id/select", workoutHandler.SelectWorkout)
		}

		apiV1.POST("/reset", workoutHandler.Reset)
	}
}
