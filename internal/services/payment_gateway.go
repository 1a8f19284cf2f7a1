package services

import (
	"context"
	"fmt"
	"time"

	"yamu-backend/internal/domain/models"
)

// Gateway is the shared payment capability; main configures the settlement
// delay, tests replace it with a zero-delay fake.
var Gateway PaymentGateway = SimulatedGateway{Delay: 2500 * time.Millisecond}

// AuthRequest is what confirm hands to the gateway.
type AuthRequest struct {
	Amount int64
	Method string
	Card   models.CardDetails
}

// AuthResult is the settlement outcome.
type AuthResult struct {
	TransactionID string
	SettledAt     time.Time
}

// PaymentGateway authorizes a payment. Confirm is the only operation in the
// system that suspends, and it suspends exactly here.
type PaymentGateway interface {
	Authorize(ctx context.Context, req AuthRequest) (AuthResult, error)
}

// SimulatedGateway settles every authorization after a fixed delay. There is
// no real payment integration; the delay stands in for the round trip.
type SimulatedGateway struct {
	Delay time.Duration
}

func (g SimulatedGateway) Authorize(ctx context.Context, req AuthRequest) (AuthResult, error) {
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return AuthResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	now := time.Now()
	return AuthResult{
		TransactionID: fmt.Sprintf("PAY-%d", now.UnixNano()),
		SettledAt:     now,
	}, nil
}
