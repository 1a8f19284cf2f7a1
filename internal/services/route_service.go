package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"yamu-backend/internal/domain/models"
	"yamu-backend/internal/utils"
)

// RouteGeometry is display data for the route map. When Fallback is set the
// coordinates are the catalog's straight-line waypoints and the distance and
// duration fields are zero.
type RouteGeometry struct {
	Coordinates []models.Coordinates `json:"coordinates"`
	DistanceKm  float64              `json:"distance_km,omitempty"`
	DurationMin float64              `json:"duration_min,omitempty"`
	Fallback    bool                 `json:"fallback"`
}

// RouteService fetches driving geometry from an OSRM-compatible router. It is
// purely a display collaborator: it never returns an error to the booking
// flow, falling back to a straight-line polyline instead.
type RouteService struct {
	Client    *http.Client
	BaseURL   string
	RequestID string
}

func (s RouteService) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: 5 * time.Second}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// FetchGeometry resolves the drawn path for a route.
func (s RouteService) FetchGeometry(ctx context.Context, route models.Route) RouteGeometry {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		s.BaseURL,
		route.FromCoords.Lng, route.FromCoords.Lat,
		route.ToCoords.Lng, route.ToCoords.Lat,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return s.fallback(route, err)
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return s.fallback(route, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.fallback(route, fmt.Errorf("router returned status %d", resp.StatusCode))
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return s.fallback(route, err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return s.fallback(route, fmt.Errorf("router returned code %q", body.Code))
	}

	r := body.Routes[0]
	coords := make([]models.Coordinates, 0, len(r.Geometry.Coordinates))
	for _, c := range r.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		// GeoJSON order is [lng, lat]
		coords = append(coords, models.Coordinates{Lat: c[1], Lng: c[0]})
	}
	if len(coords) == 0 {
		return s.fallback(route, fmt.Errorf("router returned empty geometry"))
	}

	return RouteGeometry{
		Coordinates: coords,
		DistanceKm:  math.Round(r.Distance/100) / 10,
		DurationMin: math.Round(r.Duration / 60),
	}
}

func (s RouteService) fallback(route models.Route, cause error) RouteGeometry {
	utils.LogEvent(s.RequestID, "route", "fetch_fallback", cause.Error())
	coords := route.Waypoints
	if len(coords) == 0 {
		coords = []models.Coordinates{route.FromCoords, route.ToCoords}
	}
	return RouteGeometry{Coordinates: coords, Fallback: true}
}
