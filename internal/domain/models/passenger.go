package models

// Passenger holds the per-seat traveller form. Records are index-aligned with
// the selected-seat list; SeatNumber binds the record to its seat.
type Passenger struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Gender     string `json:"gender"`
	SeatNumber int    `json:"seat_number"`
}

// CardDetails are the raw card form fields, kept as entered.
type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// Payment method identifiers.
const (
	PaymentCard   = "card"
	PaymentMobile = "mobile"
	PaymentBank   = "bank"
)
