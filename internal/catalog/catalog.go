// Package catalog holds the static bus and route data the booking wizard
// sells against. The catalog is read-only for the lifetime of the process.
package catalog

import (
	"sort"
	"strings"
	"time"

	"yamu-backend/internal/domain"
	"yamu-backend/internal/domain/models"
	"yamu-backend/internal/utils"
)

var buses = []models.Bus{
	{
		ID:             1,
		Operator:       "Lanka Ashok Leyland",
		Type:           "Luxury AC",
		DepartureTime:  "06:00 AM",
		ArrivalTime:    "10:30 AM",
		Duration:       "4h 30m",
		Price:          1500,
		AvailableSeats: 24,
		TotalSeats:     40,
		Rating:         4.8,
		Reviews:        342,
		Amenities:      []string{"ac", "wifi", "charging", "tv"},
		BusNumber:      "NB-1234",
	},
	{
		ID:             2,
		Operator:       "SLTB Super Luxury",
		Type:           "Semi Luxury AC",
		DepartureTime:  "07:30 AM",
		ArrivalTime:    "12:00 PM",
		Duration:       "4h 30m",
		Price:          1200,
		AvailableSeats: 18,
		TotalSeats:     48,
		Rating:         4.5,
		Reviews:        567,
		Amenities:      []string{"ac", "charging"},
		BusNumber:      "NC-5678",
	},
	{
		ID:             3,
		Operator:       "Rajarata Travels",
		Type:           "Luxury AC Sleeper",
		DepartureTime:  "08:00 AM",
		ArrivalTime:    "12:15 PM",
		Duration:       "4h 15m",
		Price:          1800,
		AvailableSeats: 12,
		TotalSeats:     32,
		Rating:         4.9,
		Reviews:        189,
		Amenities:      []string{"ac", "wifi", "charging", "tv", "coffee"},
		BusNumber:      "WP-9012",
	},
	{
		ID:             4,
		Operator:       "Express Runners",
		Type:           "AC Deluxe",
		DepartureTime:  "09:00 AM",
		ArrivalTime:    "01:45 PM",
		Duration:       "4h 45m",
		Price:          1350,
		AvailableSeats: 30,
		TotalSeats:     44,
		Rating:         4.6,
		Reviews:        423,
		Amenities:      []string{"ac", "wifi", "charging"},
		BusNumber:      "SP-3456",
	},
	{
		ID:             5,
		Operator:       "Royal Coaches",
		Type:           "Premium Luxury",
		DepartureTime:  "10:30 AM",
		ArrivalTime:    "02:45 PM",
		Duration:       "4h 15m",
		Price:          2200,
		AvailableSeats: 8,
		TotalSeats:     24,
		Rating:         4.95,
		Reviews:        98,
		Amenities:      []string{"ac", "wifi", "charging", "tv", "coffee"},
		BusNumber:      "WP-7890",
	},
}

// AmenityLabels maps amenity tags to their display names.
var AmenityLabels = map[string]string{
	"ac":       "Air Conditioning",
	"wifi":     "Free WiFi",
	"charging": "Charging Ports",
	"tv":       "Entertainment",
	"coffee":   "Refreshments",
}

// Cities served, as shown on the landing page search.
var Cities = []string{
	"Colombo", "Kandy", "Galle", "Jaffna", "Negombo", "Trincomalee",
	"Anuradhapura", "Batticaloa", "Matara", "Kurunegala",
}

// PaymentProviders lists the non-card options per method.
var PaymentProviders = map[string][]string{
	models.PaymentCard:   nil,
	models.PaymentMobile: {"Dialog Pay", "Mobitel Pay", "Hutch Pay", "Frimi"},
	models.PaymentBank:   {"BOC", "Commercial Bank", "Sampath Bank", "HNB"},
}

// Buses returns a copy of the full catalog in departure order.
func Buses() []models.Bus {
	out := make([]models.Bus, len(buses))
	copy(out, buses)
	return out
}

// BusByID looks up a catalog entry.
func BusByID(id int64) (models.Bus, error) {
	for _, b := range buses {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Bus{}, domain.NotFoundError{Resource: "bus"}
}

// List filters by bus-type substring ("all" or empty matches everything) and
// sorts by "price", "rating" or the default departure order.
func List(filterType, sortBy string) []models.Bus {
	out := Buses()

	filterType = strings.ToLower(strings.TrimSpace(filterType))
	if filterType != "" && filterType != "all" {
		filtered := out[:0]
		for _, b := range out {
			if strings.Contains(strings.ToLower(b.Type), filterType) {
				filtered = append(filtered, b)
			}
		}
		out = filtered
	}

	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "price":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case "rating":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	default:
		// catalog order is departure order
	}

	return out
}

// DefaultRoute is the Colombo -> Kandy journey for the day after now. The
// waypoints double as the straight-line fallback when live geometry is
// unavailable.
func DefaultRoute(now time.Time) models.Route {
	travel := now.Add(24 * time.Hour)
	return models.Route{
		From:          "Colombo",
		To:            "Kandy",
		Date:          utils.FormatDate(travel),
		FormattedDate: utils.FormatLongDate(travel),
		FromCoords:    models.Coordinates{Lat: 6.9271, Lng: 80.7789},
		ToCoords:      models.Coordinates{Lat: 7.2906, Lng: 80.6337},
		Waypoints: []models.Coordinates{
			{Lat: 6.9271, Lng: 80.7789},
			{Lat: 6.95, Lng: 80.75},
			{Lat: 7.05, Lng: 80.72},
			{Lat: 7.15, Lng: 80.69},
			{Lat: 7.2906, Lng: 80.6337},
		},
	}
}
