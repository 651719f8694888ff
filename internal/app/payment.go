package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

func (app *Application) PayBooking(w http.ResponseWriter, r *http.Request, bookingId int) {
	logger := app.contextGetLogger(r)

	if bookingId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("booking ID must be greater than zero"))
		return
	}

	var input api.PaymentRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetDetailById(r.Context(), bookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	payment, err := app.paymentProvider.Process(r.Context(), booking, domain.PaymentMethod(input.Method))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedPaymentMethod):
			app.badRequestResponse(w, r, err)
		default:
			logger.Error("payment provider failed", "booking_id", bookingId, "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.paymentRepo.Create(r.Context(), payment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("payment recorded", "booking_id", bookingId, "status", payment.Status, "reference", payment.Reference)

	err = app.writeJSON(w, http.StatusCreated, toApiPayment(payment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiPayment(payment *domain.Payment) api.PaymentResponse {
	return api.PaymentResponse{
		Id:          payment.ID,
		BookingId:   payment.BookingID,
		Method:      api.PaymentMethod(payment.Method),
		Amount:      payment.Amount.InexactFloat64(),
		Currency:    payment.Currency,
		Status:      string(payment.Status),
		Reference:   payment.Reference,
		RedirectUrl: payment.RedirectUrl,
		CreatedAt:   payment.CreatedAt,
	}
}
