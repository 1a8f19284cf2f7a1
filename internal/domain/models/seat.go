package models

// SeatStatus is the displayable state of a seat in a layout.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
	SeatSelected  SeatStatus = "selected"
)

// SeatType is a closed set; the 2+2 layout only ever produces these two.
type SeatType string

const (
	SeatWindow SeatType = "window"
	SeatAisle  SeatType = "aisle"
)

// Seat is one position in a generated bus layout. ID is stable per (row, col);
// Number is the 1-based label painted on the seat map.
type Seat struct {
	ID     string     `json:"id"`
	Number int        `json:"number"`
	Status SeatStatus `json:"status"`
	Type   SeatType   `json:"type"`
	Price  int64      `json:"price"`
	Row    int        `json:"row"`
	Col    int        `json:"col"`
}
