package handlers

import (
	"net/http"
	"strconv"
	"time"

	"yamu-backend/internal/catalog"
	"yamu-backend/internal/config"
	"yamu-backend/internal/http/middleware"
	"yamu-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ListBuses returns the catalog, optionally filtered by type substring and
// sorted by price or rating (default: departure order).
func ListBuses(c *gin.Context) {
	buses := catalog.List(c.Query("type"), c.Query("sort"))
	c.JSON(http.StatusOK, gin.H{
		"buses":          buses,
		"count":          len(buses),
		"amenity_labels": catalog.AmenityLabels,
	})
}

// BusSeats returns the generated seat layout for a bus without needing a
// session; the same bus always yields the same layout.
func BusSeats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid bus id", err)
		return
	}

	bus, lookupErr := catalog.BusByID(id)
	if lookupErr != nil {
		RespondDomainError(c, lookupErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bus":         bus,
		"seat_layout": services.GenerateSeatLayout(bus.ID),
	})
}

// RouteInfo returns the journey being sold plus the served cities.
func RouteInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"route":  catalog.DefaultRoute(time.Now()),
		"cities": catalog.Cities,
	})
}

// RouteGeometry proxies the route renderer's path lookup. Failures fall back
// to a straight line and never error out.
func RouteGeometry(env config.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := services.RouteService{
			BaseURL:   env.OSRMBaseURL,
			RequestID: middleware.GetRequestID(c),
		}
		geometry := svc.FetchGeometry(c.Request.Context(), catalog.DefaultRoute(time.Now()))
		c.JSON(http.StatusOK, geometry)
	}
}

// PaymentMethods lists the supported methods and their providers.
func PaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": catalog.PaymentProviders})
}
