package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

const bookingConfirmationTemplate = "booking_confirmation.tmpl"

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateBookingRequest

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

	req := toBookingRequest(input)

	err = req.CheckFoodQuantities()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), req.ShowtimeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("booking attempt for unknown showtime", "showtime_id", req.ShowtimeID)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if !showtime.HasCapacityFor(req.NumTickets) {
		app.badRequestResponse(w, r, domain.ErrNotEnoughSeats)
		return
	}

	availableFood := map[int]*domain.FoodItem{}

	if foodIds := req.FoodItemIds(); len(foodIds) > 0 {
		availableFood, err = app.foodRepo.GetAvailableByIds(r.Context(), foodIds)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		if len(availableFood) != len(foodIds) {
			logger.Info("dropping unavailable food items from booking",
				"requested", len(foodIds), "available", len(availableFood))
		}
	}

	booking := domain.NewBooking(showtime, req, availableFood)

	err = app.bookingRepo.Create(r.Context(), &booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotEnoughSeats):
			logger.Warn("booking lost the race for the remaining seats", "showtime_id", req.ShowtimeID)
			app.badRequestResponse(w, r, domain.ErrNotEnoughSeats)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, fmt.Errorf("booking couldn't be created: %w", err))
		}

		return
	}

	app.afterBookingCreated(r, booking)

	err = app.writeJSON(w, http.StatusCreated, toApiBooking(&booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// afterBookingCreated publishes the booking event and sends the confirmation mail in the
// background. Failures are logged only.
func (app *Application) afterBookingCreated(r *http.Request, booking domain.Booking) {
	ctx := context.WithoutCancel(r.Context())
	logger := app.contextGetLogger(r).With("booking_id", booking.ID)

	// No confirmation mail when the caller's session can't be resolved.
	user, err := app.sessionUser(r)
	sendConfirmation := err == nil
	if err != nil {
		logger.Error("failed to resolve session user for booking notifications", "error", err)
	}

	app.background(r, "publish booking event", func() {
		event := domain.BookingCreatedEvent{
			BookingID:     booking.ID,
			ShowtimeID:    booking.ShowtimeID,
			CustomerEmail: booking.CustomerEmail,
			NumTickets:    booking.NumTickets,
			TotalPrice:    booking.TotalPrice,
			CreatedAt:     booking.CreatedAt,
		}

		err := app.events.PublishBookingCreated(ctx, event)
		if err != nil {
			logger.Error("failed to publish booking event", "error", err)
		}
	})

	if !sendConfirmation {
		return
	}

	app.background(r, "send booking confirmation", func() {
		if user != nil {
			prefs, err := app.preferencesRepo.GetOrCreate(ctx, domain.DefaultPreferences(user.ID))
			if err != nil {
				logger.Error("failed to load preferences for booking confirmation", "error", err)
				return
			}

			if !prefs.NotifyBookingConfirmations {
				logger.Info("booking confirmation disabled by user preferences")
				return
			}
		}

		detail, err := app.bookingRepo.GetDetailById(ctx, booking.ID)
		if err != nil {
			logger.Error("failed to load booking for confirmation email", "error", err)
			return
		}

		err = app.mailer.Send(booking.CustomerEmail, bookingConfirmationTemplate, toBookingConfirmation(detail))
		if err != nil {
			logger.Error("failed to send booking confirmation email", "error", err)
			return
		}

		logger.Info("booking confirmation email sent")
	})
}

func (app *Application) GetBookingById(w http.ResponseWriter, r *http.Request, bookingId int) {
	if bookingId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("booking ID must be greater than zero"))
		return
	}

	detail, err := app.bookingRepo.GetDetailById(r.Context(), bookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiBookingDetail(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingRequest(input api.CreateBookingRequest) domain.BookingRequest {
	req := domain.BookingRequest{
		ShowtimeID:    input.ShowtimeId,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		NumTickets:    input.NumTickets,
		FoodItems:     make([]domain.FoodItemSelection, len(input.FoodItems)),
	}

	if input.CustomerPhone != nil && strings.TrimSpace(*input.CustomerPhone) != "" {
		req.CustomerPhone = input.CustomerPhone
	}

	for i, item := range input.FoodItems {
		req.FoodItems[i] = domain.FoodItemSelection{
			FoodItemID: item.FoodItemId,
			Quantity:   item.Quantity,
		}
	}

	return req
}

func toApiBooking(booking *domain.Booking) api.Booking {
	return api.Booking{
		Id:            booking.ID,
		ShowtimeId:    booking.ShowtimeID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
		NumTickets:    booking.NumTickets,
		TotalPrice:    booking.TotalPrice.InexactFloat64(),
		Status:        booking.Status,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}

func toApiBookingDetail(detail *domain.BookingDetail) api.BookingDetailResponse {
	foodItems := make([]api.BookingFoodLineItem, len(detail.FoodLineItems))
	for i, item := range detail.FoodLineItems {
		foodItems[i] = api.BookingFoodLineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.InexactFloat64(),
		}
	}

	return api.BookingDetailResponse{
		Booking:     toApiBooking(&detail.Booking),
		MovieTitle:  detail.MovieTitle,
		ShowDate:    types.Date{Time: detail.ShowDate},
		ShowTime:    detail.ShowTime,
		TheaterName: detail.TheaterName,
		TicketPrice: detail.TicketPrice.InexactFloat64(),
		FoodItems:   foodItems,
	}
}

type bookingConfirmationLine struct {
	Name      string
	Quantity  int
	UnitPrice string
}

type bookingConfirmation struct {
	BookingID    int
	CustomerName string
	MovieTitle   string
	TheaterName  string
	ShowDate     string
	ShowTime     string
	NumTickets   int
	TotalPrice   string
	FoodItems    []bookingConfirmationLine
}

func toBookingConfirmation(detail *domain.BookingDetail) bookingConfirmation {
	lines := make([]bookingConfirmationLine, len(detail.FoodLineItems))
	for i, item := range detail.FoodLineItems {
		lines[i] = bookingConfirmationLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		}
	}

	return bookingConfirmation{
		BookingID:    detail.ID,
		CustomerName: detail.CustomerName,
		MovieTitle:   detail.MovieTitle,
		TheaterName:  detail.TheaterName,
		ShowDate:     detail.ShowDate.Format("02/01/2006"),
		ShowTime:     detail.ShowTime,
		NumTickets:   detail.NumTickets,
		TotalPrice:   detail.TotalPrice.StringFixed(2),
		FoodItems:    lines,
	}
}
