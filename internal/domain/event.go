package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BookingCreatedEvent struct {
	BookingID     int             `json:"booking_id"`
	ShowtimeID    int             `json:"showtime_id"`
	CustomerEmail string          `json:"customer_email"`
	NumTickets    int             `json:"num_tickets"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CreatedAt     time.Time       `json:"created_at"`
}

type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error
}
