package utils

import "yamu-backend/internal/domain/models"

// WindowSeatPremium is the flat per-seat add-on charged for window seats.
const WindowSeatPremium int64 = 100

// ComputeTotal returns the payable amount for a selection:
// base fare per seat times seat count, plus each seat's own premium.
// Callers recompute this on every change; it is never cached.
func ComputeTotal(basePrice int64, seats []models.Seat) int64 {
	total := basePrice * int64(len(seats))
	for _, seat := range seats {
		total += seat.Price
	}
	return total
}
