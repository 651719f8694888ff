package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodPix        PaymentMethod = "pix"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPix:
		return true
	}

	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDeclined PaymentStatus = "declined"
)

type Payment struct {
	ID          int
	BookingID   int
	Method      PaymentMethod
	Amount      decimal.Decimal
	Currency    string
	Status      PaymentStatus
	Reference   string
	RedirectUrl *string
	CreatedAt   time.Time
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
}

// PaymentProvider settles (or starts settling) the amount due for a booking.
type PaymentProvider interface {
	Process(ctx context.Context, booking *BookingDetail, method PaymentMethod) (*Payment, error)
}
