package utils

import "time"

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04"
	layoutLongDate = "Monday, January 2, 2006"
)

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM" for tickets and logs.
func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}

// FormatLongDate renders the travel date the way the booking summary shows it.
func FormatLongDate(t time.Time) string {
	return t.Format(layoutLongDate)
}
