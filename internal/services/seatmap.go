package services

import (
	"fmt"
	"math"

	"yamu-backend/internal/domain/models"
	"yamu-backend/internal/utils"
)

const (
	seatRows = 10
	// BusCapacity is the number of seats every generated layout has.
	BusCapacity = 40
	// a seeded value above this marks the seat as already booked
	bookedThreshold = 0.65
)

// seededRandom maps an integer seed to a reproducible value in [0,1).
// Same formula the seat maps have always used: the fractional part of
// sin(seed)*10000. Pure, so a layout never re-randomizes between renders.
func seededRandom(seed int64) float64 {
	x := math.Sin(float64(seed)) * 10000
	return x - math.Floor(x)
}

// GenerateSeatLayout builds the 2+2 layout for a bus: 10 rows, two seats left
// of the aisle (cols 0,1) and two right (cols 3,4), numbered 1..40 in
// emission order. Availability is derived deterministically from the bus ID
// and seat position, so the same bus always yields an identical layout.
func GenerateSeatLayout(busID int64) []models.Seat {
	seats := make([]models.Seat, 0, BusCapacity)
	number := 1

	emit := func(row, col int, window bool) {
		status := models.SeatAvailable
		if seededRandom(busID*100+int64(row)*10+int64(col)) > bookedThreshold {
			status = models.SeatBooked
		}
		seatType := models.SeatAisle
		var price int64
		if window {
			seatType = models.SeatWindow
			price = utils.WindowSeatPremium
		}
		seats = append(seats, models.Seat{
			ID:     fmt.Sprintf("%d-%d", row, col),
			Number: number,
			Status: status,
			Type:   seatType,
			Price:  price,
			Row:    row,
			Col:    col,
		})
		number++
	}

	for row := 0; row < seatRows; row++ {
		emit(row, 0, true)
		emit(row, 1, false)
		emit(row, 3, false)
		emit(row, 4, true)
	}

	return seats
}
