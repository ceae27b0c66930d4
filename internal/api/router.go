package api

import (
	"net/http"

	v1 "github.com/flexprice/billing-schedule/internal/api/v1"
	"github.com/flexprice/billing-schedule/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Schedule *v1.ScheduleHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Schedule routes
	schedules := router.Group("/schedules")
	{
		schedules.POST("/preview", handlers.Schedule.PreviewSchedule)
	}
}
