package api

import (
	"net/http"
	"time"

	"yamu-backend/internal/config"
	"yamu-backend/internal/http/handlers"
	"yamu-backend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route behind the shared middleware chain.
func NewRouter(env config.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/routes-list", handlers.RoutesList)

		api.GET("/buses", handlers.ListBuses)
		api.GET("/buses/:id/seats", handlers.BusSeats)
		api.GET("/route", handlers.RouteInfo)
		api.GET("/route/geometry", handlers.RouteGeometry(env))
		api.GET("/payment-methods", handlers.PaymentMethods)

		api.POST("/sessions", handlers.CreateSession(env))

		guarded := api.Group("/sessions", middleware.Session(env.SessionSecret))
		{
			guarded.GET("/current", handlers.CurrentSession)
			guarded.POST("/bus", handlers.SelectBus)
			guarded.POST("/seats/toggle", handlers.ToggleSeat)
			guarded.PUT("/passengers/:index", handlers.UpdatePassenger)
			guarded.POST("/payment", handlers.SetPayment)
			guarded.POST("/advance", handlers.Advance)
			guarded.POST("/retreat", handlers.Retreat)
			guarded.POST("/confirm", handlers.Confirm)
			guarded.GET("/ticket", handlers.Ticket)
		}
	}

	handlers.SetRouter(r)
	return r
}
