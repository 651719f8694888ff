package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

// SimulatedProvider approves every payment after a fixed delay. No money moves.
type SimulatedProvider struct {
	delay    time.Duration
	currency string
}

func NewSimulatedProvider(delay time.Duration, currency string) *SimulatedProvider {
	return &SimulatedProvider{
		delay:    delay,
		currency: currency,
	}
}

func (p *SimulatedProvider) Process(
	ctx context.Context,
	booking *domain.BookingDetail,
	method domain.PaymentMethod) (*domain.Payment, error) {

	if !method.Valid() {
		return nil, domain.ErrUnsupportedPaymentMethod
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return &domain.Payment{
		BookingID: booking.ID,
		Method:    method,
		Amount:    booking.TotalPrice,
		Currency:  p.currency,
		Status:    domain.PaymentStatusApproved,
		Reference: "sim_" + uuid.NewString(),
	}, nil
}
