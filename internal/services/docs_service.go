package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"yamu-backend/internal/domain/models"
	"yamu-backend/internal/utils"
)

// DocsService renders the downloadable e-ticket for a confirmed booking.
type DocsService struct {
	RequestID string
	Now       func() time.Time
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateTicket builds the e-ticket PDF from a confirmed session view.
func (s DocsService) GenerateTicket(view SessionView, route models.Route) ([]byte, string, error) {
	if view.BookingRef == "" {
		return nil, "", fmt.Errorf("session has no confirmed booking")
	}

	utils.LogEvent(s.RequestID, "docs", "generate_ticket", "ref="+view.BookingRef)
	return buildTicketPDF(view, route, s.now())
}

func buildTicketPDF(view SessionView, route models.Route, issuedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "YAMU E-TICKET")
	pdf.Ln(12)

	operator, busNumber, busType := "-", "-", "-"
	if view.Bus != nil {
		operator = view.Bus.Operator
		busNumber = view.Bus.BusNumber
		busType = view.Bus.Type
	}

	seatNumbers := make([]string, 0, len(view.SelectedSeats))
	for _, seat := range view.SelectedSeats {
		label := fmt.Sprintf("%d", seat.Number)
		if seat.Type == models.SeatWindow {
			label += " (W)"
		}
		seatNumbers = append(seatNumbers, label)
	}

	departure, arrival := "-", "-"
	if view.Bus != nil {
		departure = view.Bus.DepartureTime
		arrival = view.Bus.ArrivalTime
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref  : %s", view.BookingRef),
		fmt.Sprintf("Route        : %s -> %s", route.From, route.To),
		fmt.Sprintf("Travel Date  : %s", route.Date),
		fmt.Sprintf("Departure    : %s  Arrival: %s", departure, arrival),
		fmt.Sprintf("Operator     : %s (%s, %s)", operator, busType, busNumber),
		fmt.Sprintf("Seats        : %s", strings.Join(seatNumbers, ", ")),
		fmt.Sprintf("Total        : %s", utils.FormatRupees(view.Total)),
		fmt.Sprintf("Issued       : %s", utils.FormatDateTime(issuedAt)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Passengers")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range view.Passengers {
		label := fmt.Sprintf("%d) %s - Seat %d", i+1, safe(p.Name, "-"), p.SeatNumber)
		if i == 0 {
			label += " (Primary)"
		}
		pdf.Cell(0, 6, label)
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Arrive 15 minutes before departure and carry a valid ID for verification.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TICKET_%s.pdf", safeFilenamePart(view.BookingRef))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
