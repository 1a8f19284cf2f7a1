package utils

import (
	"testing"

	"yamu-backend/internal/domain/models"
)

func TestComputeTotal(t *testing.T) {
	seats := []models.Seat{
		{Number: 1, Type: models.SeatWindow, Price: WindowSeatPremium},
		{Number: 2, Type: models.SeatAisle},
	}
	if got := ComputeTotal(1500, seats); got != 3100 {
		t.Fatalf("ComputeTotal = %d, want 3100", got)
	}
	if got := ComputeTotal(1500, nil); got != 0 {
		t.Fatalf("ComputeTotal with no seats = %d, want 0", got)
	}
}

func TestFormatRupees(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Rs. 0"},
		{950, "Rs. 950"},
		{1500, "Rs. 1,500"},
		{1234567, "Rs. 1,234,567"},
		{-1500, "-Rs. 1,500"},
	}
	for _, c := range cases {
		if got := FormatRupees(c.in); got != c.want {
			t.Fatalf("FormatRupees(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
