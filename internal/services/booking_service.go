package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"yamu-backend/internal/catalog"
	"yamu-backend/internal/domain"
	"yamu-backend/internal/domain/models"
	"yamu-backend/internal/utils"
)

// MaxSeatsPerBooking caps one booking at six seats.
const MaxSeatsPerBooking = 6

// BookingSession is the aggregate the wizard mutates. Only BookingService
// methods touch it, always under its own mutex; the visitor who created the
// session is its single logical owner, the lock just guards double-submits.
type BookingSession struct {
	ID            string
	Step          domain.Step
	Bus           *models.Bus
	SeatLayout    []models.Seat
	SelectedSeats []models.Seat
	Passengers    []models.Passenger
	PaymentMethod string
	Card          models.CardDetails
	FieldErrors   map[string]string
	Processing    bool
	BookingRef    string
	ConfirmedAt   time.Time
	CreatedAt     time.Time
	LastActive    time.Time

	mu sync.Mutex
}

// SessionView is the read-only projection handed to the presentation layer.
// The seat layout carries the transient "selected" overlay; Total is
// recomputed on every call, never stored.
type SessionView struct {
	ID            string             `json:"id"`
	Step          int                `json:"step"`
	StepTitle     string             `json:"step_title"`
	Bus           *models.Bus        `json:"bus,omitempty"`
	SeatLayout    []models.Seat      `json:"seat_layout,omitempty"`
	SelectedSeats []models.Seat      `json:"selected_seats"`
	Passengers    []models.Passenger `json:"passengers"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Total         int64              `json:"total"`
	Errors        map[string]string  `json:"errors,omitempty"`
	Processing    bool               `json:"processing"`
	BookingRef    string             `json:"booking_ref,omitempty"`
	ConfirmedAt   string             `json:"confirmed_at,omitempty"`
}

// BookingService drives one session through the wizard. Like the other
// services it is built per request; Store and Gateway default to the shared
// instances and are injectable for tests.
type BookingService struct {
	Store     *SessionStore
	Gateway   PaymentGateway
	Now       func() time.Time
	RequestID string
}

func (s BookingService) store() *SessionStore {
	if s.Store != nil {
		return s.Store
	}
	return Sessions
}

func (s BookingService) gateway() PaymentGateway {
	if s.Gateway != nil {
		return s.Gateway
	}
	return Gateway
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create opens a fresh session at the select-bus step.
func (s BookingService) Create() SessionView {
	sess := s.store().Create(s.now())
	utils.LogEvent(s.RequestID, "booking", "create_session", "session_id="+sess.ID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return viewOf(sess)
}

// Get returns the current projection.
func (s BookingService) Get(sessionID string) (SessionView, error) {
	sess, err := s.store().Get(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return viewOf(sess), nil
}

// SelectBus replaces the chosen bus, regenerates the seat layout from the bus
// ID and unconditionally discards seats and passenger records. Switching
// buses never carries seat state over.
func (s BookingService) SelectBus(sessionID string, busID int64) (SessionView, error) {
	bus, err := catalog.BusByID(busID)
	if err != nil {
		return SessionView{}, err
	}

	sess, err := s.store().Get(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := rejectWhenSettled(sess); err != nil {
		return SessionView{}, err
	}

	sess.Bus = &bus
	sess.SeatLayout = GenerateSeatLayout(bus.ID)
	sess.SelectedSeats = nil
	sess.Passengers = nil
	sess.FieldErrors = nil

	utils.LogEvent(s.RequestID, "booking", "select_bus",
		fmt.Sprintf("session_id=%s bus_id=%d", sess.ID, bus.ID))
	return viewOf(sess), nil
}

// ToggleSeat selects an available seat or deselects a previously selected
// one. Booked seats are rejected outright, and the seventh seat hits the
// per-booking cap. Every count change re-syncs passenger records.
func (s BookingService) ToggleSeat(sessionID, seatID string) (SessionView, error) {
	sess, err := s.store().Get(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := rejectWhenSettled(sess); err != nil {
		return SessionView{}, err
	}
	if sess.Bus == nil {
		return SessionView{}, domain.MissingSelectionError{Subject: "bus"}
	}

	var seat *models.Seat
	for i := range sess.SeatLayout {
		if sess.SeatLayout[i].ID == seatID {
			seat = &sess.SeatLayout[i]
			break
		}
	}
	if seat == nil {
		return SessionView{}, domain.NotFoundError{Resource: "seat"}
	}
	if seat.Status == models.SeatBooked {
		return SessionView{}, domain.ValidationError{Field: "seat", Msg: "seat is already booked"}
	}

	for i, sel := range sess.SelectedSeats {
		if sel.ID == seat.ID {
			// deselect: the seat's effective status reverts to available
			sess.SelectedSeats = append(sess.SelectedSeats[:i], sess.SelectedSeats[i+1:]...)
			syncPassengers(sess)
			utils.LogEvent(s.RequestID, "booking", "deselect_seat",
				fmt.Sprintf("session_id=%s seat=%d", sess.ID, seat.Number))
			return viewOf(sess), nil
		}
	}

	if len(sess.SelectedSeats) >= MaxSeatsPerBooking {
		return SessionView{}, domain.CapacityExceededError{Limit: MaxSeatsPerBooking}
	}

	selected := *seat
	selected.Status = models.SeatSelected
	sess.SelectedSeats = append(sess.SelectedSeats, selected)
	syncPassengers(sess)

	utils.LogEvent(s.RequestID, "booking", "select_seat",
		fmt.Sprintf("session_id=%s seat=%d", sess.ID, seat.Number))
	return viewOf(sess), nil
}

// UpdatePassenger overwrites the form fields of the record at index. The
// seat binding is owned by the seat selection and cannot be edited here.
func (s BookingService) UpdatePassenger(sessionID string, index int, in models.Passenger) (SessionView, error) {
	sess, err := s.store().Get(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := rejectWhenSettled(sess); err != nil {
		return SessionView{}, err
	}
	if index < 0 || index >= len(sess.Passengers) {
		return SessionView{}, domain.NotFoundError{Resource: "passenger"}
	}

	p := &sess.Passengers[index]
	p.Name = in.Name
	p.Email = in.Email
	p.Phone = in.Phone
	p.Gender = strings.ToLower(strings.TrimSpace(in.Gender))

	return viewOf(sess), nil
}

// SetPayment records the chosen method and, for cards, the raw form fields.
// Fields survive backward navigation; nothing is validated until confirm.
func (s BookingService) SetPayment(sessionID, method string, card models.CardDetails) (SessionView, error) {
	sess, err := s.store().Get(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := rejectWhenSettled(sess); err != nil {
		return SessionView{}, err
	}

	method = strings.ToLower(strings.TrimSpace(method))
	switch method {
	case models.PaymentCard, models.PaymentMobile, models.PaymentBank:
	default:
		return SessionView{}, domain.ValidationError{Field: "method", Msg: "unknown payment method"}
	}

	sess.PaymentMethod = method
	sess.Card = card
	return viewOf(sess), nil
}

// Advance moves the wizard one step forward, enforcing the gate of the step
// being left. On any failure the session is untouched except for the
// refreshed field-error map.
func (s BookingService) Advance(sessionID string) (SessionView, error) {
	sess, err := s.store().Get(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := rejectWhenSettled(sess); err != nil {
		return SessionView{}, err
	}

	switch sess.Step {
	case domain.StepSelectBus:
		if sess.Bus == nil {
			return viewOf(sess), domain.MissingSelectionError{Subject: "bus"}
		}
	case domain.StepChooseSeats:
		if len(sess.SelectedSeats) == 0 {
			return viewOf(sess), domain.MissingSelectionError{Subject: "seat"}
		}
	case domain.StepPassengerDetails:
		if errs := ValidatePassengers(sess.Passengers); len(errs) > 0 {
			sess.FieldErrors = errs
			return viewOf(sess), domain.FieldValidationError{Fields: errs}
		}
		sess.FieldErrors = nil
	case domain.StepPayment:
		// payment is committed via confirm, not advanced past
		return viewOf(sess), domain.ConflictError{Resource: "booking", Msg: "payment must be confirmed"}
	}

	sess.Step++
	utils.LogEvent(s.RequestID, "booking", "advance",
		fmt.Sprintf("session_id=%s step=%d", sess.ID, sess.Step))
	return viewOf(sess), nil
}

// Retreat steps back without validating or clearing anything, so a backward
// then forward round trip preserves seats, passengers and payment fields.
// The confirmation step is terminal.
func (s BookingService) Retreat(sessionID string) (SessionView, error) {
	sess, err := s.store().Get(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := rejectWhenSettled(sess); err != nil {
		return SessionView{}, err
	}

	if sess.Step > domain.StepSelectBus {
		sess.Step--
	}
	return viewOf(sess), nil
}

// Confirm commits the booking from the payment step: card fields are
// validated for the card method, the gateway settles the amount (the only
// suspension point in the system), and the session freezes at the
// confirmation step with its booking reference.
func (s BookingService) Confirm(ctx context.Context, sessionID string) (SessionView, error) {
	sess, err := s.store().Get(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()

	if sess.BookingRef != "" {
		sess.mu.Unlock()
		return SessionView{}, domain.ConflictError{Resource: "booking", Msg: "booking already confirmed"}
	}
	if sess.Processing {
		sess.mu.Unlock()
		return SessionView{}, domain.ConflictError{Resource: "booking", Msg: "payment is being processed"}
	}
	if sess.Step != domain.StepPayment {
		sess.mu.Unlock()
		return SessionView{}, domain.ConflictError{Resource: "booking", Msg: "not at the payment step"}
	}
	if sess.PaymentMethod == "" {
		sess.mu.Unlock()
		return SessionView{}, domain.MissingSelectionError{Subject: "payment method"}
	}
	if sess.PaymentMethod == models.PaymentCard {
		if errs := ValidateCard(sess.Card); len(errs) > 0 {
			sess.FieldErrors = errs
			view := viewOf(sess)
			sess.mu.Unlock()
			return view, domain.FieldValidationError{Fields: errs}
		}
	}
	sess.FieldErrors = nil
	sess.Processing = true

	req := AuthRequest{
		Amount: sessionTotal(sess),
		Method: sess.PaymentMethod,
		Card:   sess.Card,
	}
	sess.mu.Unlock()

	res, err := s.gateway().Authorize(ctx, req)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Processing = false
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "confirm", "authorize failed: "+err.Error())
		return viewOf(sess), domain.InternalError{Msg: "payment could not be processed", Err: err}
	}

	now := s.now()
	sess.BookingRef = utils.NewBookingRef(now)
	sess.ConfirmedAt = now
	sess.Step = domain.StepConfirmation

	utils.LogEvent(s.RequestID, "booking", "confirm",
		fmt.Sprintf("session_id=%s ref=%s tx=%s", sess.ID, sess.BookingRef, res.TransactionID))
	return viewOf(sess), nil
}

// rejectWhenSettled blocks mutators while a payment is in flight and after
// the session froze into its confirmation view.
func rejectWhenSettled(sess *BookingSession) error {
	if sess.Processing {
		return domain.ConflictError{Resource: "booking", Msg: "payment is being processed"}
	}
	if sess.Step.Terminal() {
		return domain.ConflictError{Resource: "booking", Msg: "booking already confirmed"}
	}
	return nil
}

// syncPassengers rebuilds the record list one-per-selected-seat, in selection
// order. Field values are carried over by positional index on purpose; the
// seat binding is refreshed from the seat at that position.
func syncPassengers(sess *BookingSession) {
	next := make([]models.Passenger, len(sess.SelectedSeats))
	for i, seat := range sess.SelectedSeats {
		if i < len(sess.Passengers) {
			next[i] = sess.Passengers[i]
		}
		next[i].SeatNumber = seat.Number
	}
	sess.Passengers = next
}

func sessionTotal(sess *BookingSession) int64 {
	if sess.Bus == nil {
		return 0
	}
	return utils.ComputeTotal(sess.Bus.Price, sess.SelectedSeats)
}

// viewOf snapshots the session. Callers hold the session lock.
func viewOf(sess *BookingSession) SessionView {
	view := SessionView{
		ID:            sess.ID,
		Step:          int(sess.Step),
		StepTitle:     sess.Step.String(),
		Bus:           sess.Bus,
		SelectedSeats: append([]models.Seat{}, sess.SelectedSeats...),
		Passengers:    append([]models.Passenger{}, sess.Passengers...),
		PaymentMethod: sess.PaymentMethod,
		Total:         sessionTotal(sess),
		Processing:    sess.Processing,
		BookingRef:    sess.BookingRef,
	}

	if len(sess.FieldErrors) > 0 {
		view.Errors = make(map[string]string, len(sess.FieldErrors))
		for k, v := range sess.FieldErrors {
			view.Errors[k] = v
		}
	}

	if !sess.ConfirmedAt.IsZero() {
		view.ConfirmedAt = utils.FormatDateTime(sess.ConfirmedAt)
	}

	// overlay transient selection state on the immutable base layout
	if len(sess.SeatLayout) > 0 {
		selected := make(map[string]bool, len(sess.SelectedSeats))
		for _, seat := range sess.SelectedSeats {
			selected[seat.ID] = true
		}
		layout := make([]models.Seat, len(sess.SeatLayout))
		copy(layout, sess.SeatLayout)
		for i := range layout {
			if selected[layout[i].ID] {
				layout[i].Status = models.SeatSelected
			}
		}
		view.SeatLayout = layout
	}

	return view
}
