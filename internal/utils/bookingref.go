package utils

import (
	"strconv"
	"strings"
	"time"
)

const bookingRefPrefix = "YAMU-"

// NewBookingRef produces the human-readable booking reference handed out at
// confirmation: prefix plus the millisecond timestamp in uppercase base 36.
// Unique enough without a backend to check collisions against.
func NewBookingRef(t time.Time) string {
	return bookingRefPrefix + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}
