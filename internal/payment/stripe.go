package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

type StripeProvider struct {
	cancelUrl  string
	successUrl string
	currency   string
	newSession func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// NewStripeProvider expects stripe.Key to be set by the caller.
func NewStripeProvider(cancelUrl, successUrl, currency string) *StripeProvider {
	return &StripeProvider{
		cancelUrl:  cancelUrl,
		successUrl: successUrl,
		currency:   currency,
		newSession: session.New,
	}
}

// Process opens a checkout session for the booking. The payment stays pending until the
// customer completes the hosted checkout page returned in RedirectUrl.
func (s *StripeProvider) Process(
	ctx context.Context,
	booking *domain.BookingDetail,
	method domain.PaymentMethod) (*domain.Payment, error) {

	params, err := s.checkoutParams(booking, method)
	if err != nil {
		return nil, err
	}

	params.Context = ctx

	checkoutSession, err := s.newSession(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}

	return &domain.Payment{
		BookingID:   booking.ID,
		Method:      method,
		Amount:      booking.TotalPrice,
		Currency:    s.currency,
		Status:      domain.PaymentStatusPending,
		Reference:   checkoutSession.ID,
		RedirectUrl: stripe.String(checkoutSession.URL),
	}, nil
}

func (s *StripeProvider) checkoutParams(
	booking *domain.BookingDetail,
	method domain.PaymentMethod) (*stripe.CheckoutSessionParams, error) {

	var methodType string

	switch method {
	case domain.PaymentMethodCreditCard, domain.PaymentMethodDebitCard:
		methodType = "card"
	case domain.PaymentMethodPix:
		methodType = "pix"
	default:
		return nil, domain.ErrUnsupportedPaymentMethod
	}

	lineItems := []*stripe.CheckoutSessionLineItemParams{
		s.lineItem(
			fmt.Sprintf("🎬 %s", booking.MovieTitle),
			fmt.Sprintf(
				"Theater: %s • Showtime: %s %s",
				booking.TheaterName,
				booking.ShowDate.Format("Jan 2, 2006"),
				booking.ShowTime,
			),
			booking.TicketPrice,
			booking.NumTickets,
		),
	}

	for _, item := range booking.FoodLineItems {
		lineItems = append(lineItems, s.lineItem(item.Name, "", item.UnitPrice, item.Quantity))
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: []*string{stripe.String(methodType)},
		SuccessURL:         stripe.String(s.successUrl),
		CancelURL:          stripe.String(s.cancelUrl),
		CustomerEmail:      stripe.String(booking.CustomerEmail),
		ClientReferenceID:  stripe.String(strconv.Itoa(booking.ID)),
		Metadata: map[string]string{
			"booking_id":     strconv.Itoa(booking.ID),
			"payment_method": string(method),
		},
	}

	return params, nil
}

func (s *StripeProvider) lineItem(
	name, description string,
	unitPrice decimal.Decimal,
	quantity int) *stripe.CheckoutSessionLineItemParams {

	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(name),
	}

	if description != "" {
		product.Description = stripe.String(description)
	}

	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:    stripe.String(s.currency),
			UnitAmount:  stripe.Int64(unitPrice.Mul(decimal.NewFromInt(100)).IntPart()),
			ProductData: product,
		},
		Quantity: stripe.Int64(int64(quantity)),
	}
}
