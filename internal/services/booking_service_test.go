package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"yamu-backend/internal/domain"
	"yamu-backend/internal/domain/models"
)

type stubGateway struct {
	err   error
	calls int
}

func (g *stubGateway) Authorize(ctx context.Context, req AuthRequest) (AuthResult, error) {
	g.calls++
	if g.err != nil {
		return AuthResult{}, g.err
	}
	return AuthResult{TransactionID: "PAY-TEST", SettledAt: time.Now()}, nil
}

func newTestService(gw PaymentGateway) (BookingService, string) {
	svc := BookingService{
		Store:   NewSessionStore(time.Hour),
		Gateway: gw,
		Now:     func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) },
	}
	view := svc.Create()
	return svc, view.ID
}

func availableSeatIDs(layout []models.Seat, n int) []string {
	ids := make([]string, 0, n)
	for _, seat := range layout {
		if seat.Status == models.SeatAvailable {
			ids = append(ids, seat.ID)
			if len(ids) == n {
				break
			}
		}
	}
	return ids
}

func bookedSeatID(layout []models.Seat) string {
	for _, seat := range layout {
		if seat.Status == models.SeatBooked {
			return seat.ID
		}
	}
	return ""
}

func fillPassenger(t *testing.T, svc BookingService, id string, index int, email string) {
	t.Helper()
	_, err := svc.UpdatePassenger(id, index, models.Passenger{
		Name:   "Tester",
		Email:  email,
		Phone:  "0771234567",
		Gender: "Female",
	})
	if err != nil {
		t.Fatalf("UpdatePassenger(%d) error: %v", index, err)
	}
}

func TestSelectBusResetsSelection(t *testing.T) {
	svc, id := newTestService(&stubGateway{})

	view, err := svc.SelectBus(id, 1)
	if err != nil {
		t.Fatalf("SelectBus error: %v", err)
	}
	if view.Bus == nil || view.Bus.ID != 1 {
		t.Fatalf("bus not set: %+v", view.Bus)
	}
	if len(view.SeatLayout) != BusCapacity {
		t.Fatalf("layout has %d seats, want %d", len(view.SeatLayout), BusCapacity)
	}

	seatID := availableSeatIDs(view.SeatLayout, 1)[0]
	if _, err := svc.ToggleSeat(id, seatID); err != nil {
		t.Fatalf("ToggleSeat error: %v", err)
	}

	view, err = svc.SelectBus(id, 2)
	if err != nil {
		t.Fatalf("SelectBus again error: %v", err)
	}
	if len(view.SelectedSeats) != 0 || len(view.Passengers) != 0 {
		t.Fatalf("switching buses kept %d seats and %d passengers",
			len(view.SelectedSeats), len(view.Passengers))
	}
}

func TestSelectBusUnknown(t *testing.T) {
	svc, id := newTestService(&stubGateway{})
	if _, err := svc.SelectBus(id, 99); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestToggleSeatSelfInverse(t *testing.T) {
	svc, id := newTestService(&stubGateway{})
	view, _ := svc.SelectBus(id, 1)
	seatID := availableSeatIDs(view.SeatLayout, 1)[0]

	view, err := svc.ToggleSeat(id, seatID)
	if err != nil {
		t.Fatalf("select error: %v", err)
	}
	if len(view.SelectedSeats) != 1 || view.SelectedSeats[0].ID != seatID {
		t.Fatalf("seat not selected: %+v", view.SelectedSeats)
	}
	if len(view.Passengers) != 1 {
		t.Fatalf("expected one passenger record, got %d", len(view.Passengers))
	}

	view, err = svc.ToggleSeat(id, seatID)
	if err != nil {
		t.Fatalf("deselect error: %v", err)
	}
	if len(view.SelectedSeats) != 0 || len(view.Passengers) != 0 {
		t.Fatalf("toggle twice should restore the empty selection, got %+v", view.SelectedSeats)
	}
}

func TestToggleSeatRejectsBooked(t *testing.T) {
	svc, id := newTestService(&stubGateway{})
	view, _ := svc.SelectBus(id, 1)

	booked := bookedSeatID(view.SeatLayout)
	if booked == "" {
		t.Fatalf("layout for bus 1 has no booked seat")
	}
	if _, err := svc.ToggleSeat(id, booked); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for booked seat, got %v", err)
	}
}

func TestToggleSeatCapacity(t *testing.T) {
	svc, id := newTestService(&stubGateway{})
	view, _ := svc.SelectBus(id, 1)

	ids := availableSeatIDs(view.SeatLayout, MaxSeatsPerBooking+1)
	if len(ids) != MaxSeatsPerBooking+1 {
		t.Fatalf("not enough available seats for the test: %d", len(ids))
	}

	for _, seatID := range ids[:MaxSeatsPerBooking] {
		if _, err := svc.ToggleSeat(id, seatID); err != nil {
			t.Fatalf("ToggleSeat(%s) error: %v", seatID, err)
		}
	}

	_, err := svc.ToggleSeat(id, ids[MaxSeatsPerBooking])
	if !domain.IsCapacityExceeded(err) {
		t.Fatalf("expected capacity error on seat %d, got %v", MaxSeatsPerBooking+1, err)
	}

	view, _ = svc.Get(id)
	if len(view.SelectedSeats) != MaxSeatsPerBooking {
		t.Fatalf("rejected toggle changed the selection: %d seats", len(view.SelectedSeats))
	}
}

func TestSyncPassengersPreservesByIndex(t *testing.T) {
	svc, id := newTestService(&stubGateway{})
	view, _ := svc.SelectBus(id, 1)
	ids := availableSeatIDs(view.SeatLayout, 2)

	svc.ToggleSeat(id, ids[0])
	svc.ToggleSeat(id, ids[1])
	fillPassenger(t, svc, id, 0, "first@example.com")
	fillPassenger(t, svc, id, 1, "")

	// dropping the first seat shifts records up by index, so the former
	// second record now rides on the remaining seat
	view, err := svc.ToggleSeat(id, ids[0])
	if err != nil {
		t.Fatalf("deselect error: %v", err)
	}
	if len(view.Passengers) != 1 {
		t.Fatalf("expected one passenger after deselect, got %d", len(view.Passengers))
	}
	if view.Passengers[0].Email != "first@example.com" {
		t.Fatalf("passenger fields not carried by index: %+v", view.Passengers[0])
	}
	if view.Passengers[0].SeatNumber != view.SelectedSeats[0].Number {
		t.Fatalf("seat binding not refreshed: passenger seat %d, selected %d",
			view.Passengers[0].SeatNumber, view.SelectedSeats[0].Number)
	}
}

func TestUpdatePassengerOutOfRange(t *testing.T) {
	svc, id := newTestService(&stubGateway{})
	svc.SelectBus(id, 1)

	_, err := svc.UpdatePassenger(id, 0, models.Passenger{Name: "X"})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found for index with no record, got %v", err)
	}
}

func TestAdvanceGates(t *testing.T) {
	svc, id := newTestService(&stubGateway{})

	// step 1 requires a bus
	if _, err := svc.Advance(id); !domain.IsMissingSelection(err) {
		t.Fatalf("expected missing-selection without a bus, got %v", err)
	}
	view, _ := svc.Get(id)
	if view.Step != 1 {
		t.Fatalf("failed advance moved the step to %d", view.Step)
	}

	svc.SelectBus(id, 1)
	view, err := svc.Advance(id)
	if err != nil || view.Step != 2 {
		t.Fatalf("advance to seats failed: step=%d err=%v", view.Step, err)
	}

	// step 2 requires at least one seat
	if _, err := svc.Advance(id); !domain.IsMissingSelection(err) {
		t.Fatalf("expected missing-selection without seats, got %v", err)
	}

	layout, _ := svc.Get(id)
	svc.ToggleSeat(id, availableSeatIDs(layout.SeatLayout, 1)[0])
	view, err = svc.Advance(id)
	if err != nil || view.Step != 3 {
		t.Fatalf("advance to passengers failed: step=%d err=%v", view.Step, err)
	}

	// step 3 validates the form and surfaces the field map
	view, err = svc.Advance(id)
	if _, ok := domain.AsFieldValidation(err); !ok {
		t.Fatalf("expected field-validation error, got %v", err)
	}
	if view.Step != 3 {
		t.Fatalf("failed validation moved the step to %d", view.Step)
	}
	if view.Errors["name-0"] != "Name is required" {
		t.Fatalf("field errors not surfaced: %v", view.Errors)
	}

	fillPassenger(t, svc, id, 0, "tester@example.com")
	view, err = svc.Advance(id)
	if err != nil || view.Step != 4 {
		t.Fatalf("advance to payment failed: step=%d err=%v", view.Step, err)
	}
	if len(view.Errors) != 0 {
		t.Fatalf("stale field errors survived a valid advance: %v", view.Errors)
	}

	// the payment step is left via confirm only
	if _, err := svc.Advance(id); !domain.IsConflict(err) {
		t.Fatalf("expected conflict advancing past payment, got %v", err)
	}
}

func TestRetreatRoundTripKeepsState(t *testing.T) {
	svc, id := newTestService(&stubGateway{})
	view, _ := svc.SelectBus(id, 1)
	ids := availableSeatIDs(view.SeatLayout, 2)
	svc.ToggleSeat(id, ids[0])
	svc.ToggleSeat(id, ids[1])
	svc.Advance(id)
	svc.Advance(id)

	view, err := svc.Retreat(id)
	if err != nil || view.Step != 2 {
		t.Fatalf("retreat failed: step=%d err=%v", view.Step, err)
	}
	if len(view.SelectedSeats) != 2 {
		t.Fatalf("retreat dropped seats: %d", len(view.SelectedSeats))
	}

	view, err = svc.Advance(id)
	if err != nil || view.Step != 3 {
		t.Fatalf("re-advance failed: step=%d err=%v", view.Step, err)
	}
	if len(view.Passengers) != 2 {
		t.Fatalf("round trip dropped passenger records: %d", len(view.Passengers))
	}
}

func TestRetreatStopsAtFirstStep(t *testing.T) {
	svc, id := newTestService(&stubGateway{})
	view, err := svc.Retreat(id)
	if err != nil || view.Step != 1 {
		t.Fatalf("retreat at step 1 should be a no-op: step=%d err=%v", view.Step, err)
	}
}

func advanceToPayment(t *testing.T, svc BookingService, id string, seats int) {
	t.Helper()
	view, err := svc.SelectBus(id, 1)
	if err != nil {
		t.Fatalf("SelectBus error: %v", err)
	}
	for _, seatID := range availableSeatIDs(view.SeatLayout, seats) {
		if _, err := svc.ToggleSeat(id, seatID); err != nil {
			t.Fatalf("ToggleSeat error: %v", err)
		}
	}
	if _, err := svc.Advance(id); err != nil {
		t.Fatalf("advance to seats error: %v", err)
	}
	if _, err := svc.Advance(id); err != nil {
		t.Fatalf("advance to passengers error: %v", err)
	}
	for i := 0; i < seats; i++ {
		email := ""
		if i == 0 {
			email = "tester@example.com"
		}
		fillPassenger(t, svc, id, i, email)
	}
	if _, err := svc.Advance(id); err != nil {
		t.Fatalf("advance to payment error: %v", err)
	}
}

func TestConfirmEndToEnd(t *testing.T) {
	gw := &stubGateway{}
	svc, id := newTestService(gw)
	advanceToPayment(t, svc, id, 2)

	if _, err := svc.SetPayment(id, "card", models.CardDetails{
		Number: "4111 1111 1111 1111",
		Name:   "Test Er",
		Expiry: "12/27",
		CVV:    "123",
	}); err != nil {
		t.Fatalf("SetPayment error: %v", err)
	}

	view, err := svc.Confirm(context.Background(), id)
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if view.Step != 5 {
		t.Fatalf("confirmed session at step %d, want 5", view.Step)
	}
	if !strings.HasPrefix(view.BookingRef, "YAMU-") {
		t.Fatalf("booking ref %q lacks prefix", view.BookingRef)
	}
	if gw.calls != 1 {
		t.Fatalf("gateway authorized %d times", gw.calls)
	}

	snapshot, _ := svc.Get(id)
	var premiums int64
	for _, seat := range snapshot.SelectedSeats {
		premiums += seat.Price
	}
	want := snapshot.Bus.Price*2 + premiums
	if view.Total != want {
		t.Fatalf("total %d, want %d", view.Total, want)
	}

	// the session is frozen at confirmation
	if _, err := svc.ToggleSeat(id, snapshot.SelectedSeats[0].ID); !domain.IsConflict(err) {
		t.Fatalf("expected conflict mutating a settled session, got %v", err)
	}
	if _, err := svc.Confirm(context.Background(), id); !domain.IsConflict(err) {
		t.Fatalf("expected conflict confirming twice, got %v", err)
	}
}

func TestConfirmRequiresPaymentStep(t *testing.T) {
	svc, id := newTestService(&stubGateway{})
	svc.SelectBus(id, 1)

	if _, err := svc.Confirm(context.Background(), id); !domain.IsConflict(err) {
		t.Fatalf("expected conflict confirming before payment, got %v", err)
	}
}

func TestConfirmRequiresMethodAndValidCard(t *testing.T) {
	gw := &stubGateway{}
	svc, id := newTestService(gw)
	advanceToPayment(t, svc, id, 1)

	if _, err := svc.Confirm(context.Background(), id); !domain.IsMissingSelection(err) {
		t.Fatalf("expected missing payment method, got %v", err)
	}

	svc.SetPayment(id, "card", models.CardDetails{Number: "4111", Name: "", Expiry: "12", CVV: "1"})
	view, err := svc.Confirm(context.Background(), id)
	if _, ok := domain.AsFieldValidation(err); !ok {
		t.Fatalf("expected card field errors, got %v", err)
	}
	if view.Errors["cardNumber"] == "" {
		t.Fatalf("card errors not surfaced: %v", view.Errors)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway reached despite invalid card")
	}

	// non-card methods skip the card form entirely
	svc.SetPayment(id, "mobile", models.CardDetails{})
	if _, err := svc.Confirm(context.Background(), id); err != nil {
		t.Fatalf("mobile confirm error: %v", err)
	}
}

func TestConfirmGatewayFailure(t *testing.T) {
	gw := &stubGateway{err: context.DeadlineExceeded}
	svc, id := newTestService(gw)
	advanceToPayment(t, svc, id, 1)
	svc.SetPayment(id, "bank", models.CardDetails{})

	_, err := svc.Confirm(context.Background(), id)
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error from gateway failure, got %v", err)
	}

	// the session stays at payment and can be retried
	view, _ := svc.Get(id)
	if view.Step != 4 || view.Processing {
		t.Fatalf("failed confirm left step=%d processing=%v", view.Step, view.Processing)
	}

	gw.err = nil
	if _, err := svc.Confirm(context.Background(), id); err != nil {
		t.Fatalf("retry after gateway failure error: %v", err)
	}
}

func TestGetUnknownSession(t *testing.T) {
	svc := BookingService{Store: NewSessionStore(time.Hour)}
	if _, err := svc.Get("missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSetPaymentUnknownMethod(t *testing.T) {
	svc, id := newTestService(&stubGateway{})
	if _, err := svc.SetPayment(id, "crypto", models.CardDetails{}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
