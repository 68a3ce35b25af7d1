package server

import (
	"net/http"
	"time"

	"allocation-tracker/internal/auth"
	"allocation-tracker/internal/throttle"
	"allocation-tracker/services/allocation/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services and collaborators the HTTP surface is built from
type Dependencies struct {
	Claims          handler.ClaimsServiceInterface
	Lifecycle       handler.LifecycleServiceInterface
	Reports         handler.ReportsServiceInterface
	Stream          handler.Subscriber
	Verifier        *auth.Verifier
	Limiter         throttle.Limiter
	RequestTimeout  time.Duration
	StreamHeartbeat time.Duration
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	claimsHandler := handler.NewClaimsHandler(deps.Claims, deps.RequestTimeout)
	adminHandler := handler.NewAdminHandler(deps.Lifecycle, deps.Reports, deps.RequestTimeout)
	streamHandler := handler.NewStreamHandler(deps.Stream, deps.StreamHeartbeat)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("", AuthMiddleware(deps.Verifier))

	bids := api.Group("/bids")
	{
		bids.POST("", ThrottleMiddleware(deps.Limiter), claimsHandler.SubmitClaimsHandler)
		bids.GET("", claimsHandler.ListBidsHandler)
	}

	api.GET("/cycles/open", claimsHandler.OpenCyclesHandler)
	api.GET("/stream", streamHandler.StreamHandler)

	admin := api.Group("/admin", RequireRole(auth.RoleAdmin))
	{
		cycles := admin.Group("/cycles")
		cycles.GET("", adminHandler.ListCyclesHandler)
		cycles.POST("", adminHandler.CreateCycleHandler)
		cycles.GET("/:cycle_id", adminHandler.GetCycleHandler)
		cycles.POST("/:cycle_id/actions", adminHandler.TransitionCycleHandler)
		cycles.GET("/:cycle_id/items", adminHandler.ListItemsHandler)
		cycles.POST("/:cycle_id/items", adminHandler.CreateItemHandler)
		cycles.POST("/:cycle_id/items/import", adminHandler.ImportItemsHandler)
		cycles.GET("/:cycle_id/results", adminHandler.ResultsHandler)
		cycles.GET("/:cycle_id/export", adminHandler.ExportHandler)
		cycles.POST("/:cycle_id/notify-winners", adminHandler.NotifyWinnersHandler)

		items := admin.Group("/items")
		items.PATCH("/:item_id", adminHandler.UpdateItemHandler)
		items.DELETE("/:item_id", adminHandler.DeleteItemHandler)
	}

	return router
}
