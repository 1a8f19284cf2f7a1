package models

// Bus is a catalog entry. The catalog is static for the session; fares are
// whole rupees.
type Bus struct {
	ID             int64    `json:"id"`
	Operator       string   `json:"operator"`
	Type           string   `json:"type"`
	DepartureTime  string   `json:"departure_time"`
	ArrivalTime    string   `json:"arrival_time"`
	Duration       string   `json:"duration"`
	Price          int64    `json:"price"`
	AvailableSeats int      `json:"available_seats"`
	TotalSeats     int      `json:"total_seats"`
	Rating         float64  `json:"rating"`
	Reviews        int      `json:"reviews"`
	Amenities      []string `json:"amenities"`
	BusNumber      string   `json:"bus_number"`
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route describes the journey being booked, including the fallback polyline
// used when live route geometry cannot be fetched.
type Route struct {
	From          string        `json:"from"`
	To            string        `json:"to"`
	Date          string        `json:"date"`
	FormattedDate string        `json:"formatted_date"`
	FromCoords    Coordinates   `json:"from_coords"`
	ToCoords      Coordinates   `json:"to_coords"`
	Waypoints     []Coordinates `json:"waypoints"`
}
