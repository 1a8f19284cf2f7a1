package handlers

import (
	"net/http"
	"strconv"
	"time"

	"yamu-backend/internal/catalog"
	"yamu-backend/internal/config"
	"yamu-backend/internal/domain/models"
	"yamu-backend/internal/http/middleware"
	"yamu-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type selectBusRequest struct {
	BusID int64 `json:"bus_id" binding:"required,gt=0"`
}

type toggleSeatRequest struct {
	SeatID string `json:"seat_id" binding:"required"`
}

type passengerRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`
}

type cardRequest struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type paymentRequest struct {
	Method string      `json:"method" binding:"required,oneof=card mobile bank"`
	Card   cardRequest `json:"card"`
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

// CreateSession opens a new booking session and hands back its token.
func CreateSession(env config.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		view := bookingService(c).Create()

		token, err := middleware.IssueSessionToken(env.SessionSecret, view.ID, env.SessionTTL, time.Now())
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to issue session token", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session": view,
			"token":   token,
		})
	}
}

// CurrentSession returns the full projection of the caller's session.
func CurrentSession(c *gin.Context) {
	view, err := bookingService(c).Get(middleware.GetSessionID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// SelectBus sets the bus for the session, regenerating the seat layout.
func SelectBus(c *gin.Context) {
	var req selectBusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	view, err := bookingService(c).SelectBus(middleware.GetSessionID(c), req.BusID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// ToggleSeat selects or deselects one seat.
func ToggleSeat(c *gin.Context) {
	var req toggleSeatRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	view, err := bookingService(c).ToggleSeat(middleware.GetSessionID(c), req.SeatID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// UpdatePassenger overwrites the passenger form at the given index.
func UpdatePassenger(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		RespondError(c, http.StatusBadRequest, "invalid passenger index", err)
		return
	}

	var req passengerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	view, opErr := bookingService(c).UpdatePassenger(middleware.GetSessionID(c), index, models.Passenger{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Gender: req.Gender,
	})
	if opErr != nil {
		RespondDomainError(c, opErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// SetPayment stores the chosen method and card fields.
func SetPayment(c *gin.Context) {
	var req paymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	view, err := bookingService(c).SetPayment(middleware.GetSessionID(c), req.Method, models.CardDetails{
		Number: req.Card.Number,
		Name:   req.Card.Name,
		Expiry: req.Card.Expiry,
		CVV:    req.Card.CVV,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// Advance moves the wizard one step forward.
func Advance(c *gin.Context) {
	view, err := bookingService(c).Advance(middleware.GetSessionID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// Retreat moves the wizard one step back.
func Retreat(c *gin.Context) {
	view, err := bookingService(c).Retreat(middleware.GetSessionID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// Confirm commits the booking; this is the only request that waits on the
// payment gateway.
func Confirm(c *gin.Context) {
	view, err := bookingService(c).Confirm(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// Ticket streams the e-ticket PDF for a confirmed session.
func Ticket(c *gin.Context) {
	reqID := middleware.GetRequestID(c)

	view, err := services.BookingService{RequestID: reqID}.Get(middleware.GetSessionID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if view.BookingRef == "" {
		RespondError(c, http.StatusConflict, "booking is not confirmed yet", nil)
		return
	}

	docs := services.DocsService{RequestID: reqID}
	pdf, filename, err := docs.GenerateTicket(view, catalog.DefaultRoute(time.Now()))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to generate ticket", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
