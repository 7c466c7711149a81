package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"tripbook/internal/handler"
	"tripbook/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	TripHandler     *handler.TripHandler
	VehicleHandler  *handler.VehicleHandler
	SettingsHandler *handler.SettingsHandler
	EarningsHandler *handler.EarningsHandler
	PlaceHandler    *handler.PlaceHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Trip lifecycle routes.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.ListTrips)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.PATCH("/:id", deps.TripHandler.UpdateTrip)
			trips.DELETE("/:id", deps.TripHandler.DeleteTrip)
			trips.POST("/:id/confirm", deps.TripHandler.ConfirmTrip)
			trips.POST("/:id/start", deps.TripHandler.StartTrip)
			trips.POST("/:id/tolls", deps.TripHandler.AddToll)
			trips.POST("/:id/advances", deps.TripHandler.AddAdvance)
			trips.POST("/:id/complete", deps.TripHandler.CompleteTrip)
			trips.POST("/:id/cancel", deps.TripHandler.CancelTrip)
		}

		// Vehicle registry routes.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.POST("", deps.VehicleHandler.CreateVehicle)
			vehicles.GET("", deps.VehicleHandler.ListVehicles)
			vehicles.GET("/:id", deps.VehicleHandler.GetVehicle)
			vehicles.PUT("/:id", deps.VehicleHandler.UpdateVehicle)
			vehicles.DELETE("/:id", deps.VehicleHandler.DeleteVehicle)
		}

		// Driver settings routes.
		settings := v1.Group("/settings")
		{
			settings.GET("", deps.SettingsHandler.GetSettings)
			settings.PUT("", deps.SettingsHandler.SaveSettings)
		}

		// Earnings summary.
		v1.GET("/earnings", deps.EarningsHandler.GetSummary)

		// Place search and routing.
		places := v1.Group("/places")
		{
			places.GET("/search", deps.PlaceHandler.SearchPlaces)
			places.GET("/reverse", deps.PlaceHandler.ReverseGeocode)
			places.GET("/recent", deps.PlaceHandler.ListRecentSearches)
			places.POST("/recent", deps.PlaceHandler.AddRecentSearch)
			places.DELETE("/recent", deps.PlaceHandler.ClearRecentSearches)
		}
		v1.POST("/routes", deps.PlaceHandler.CalculateRoute)
	}

	return router
}
