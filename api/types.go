// Package api holds the HTTP request and response types described by api.yaml.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// PaymentMethod defines model for PaymentMethod.
type PaymentMethod string

const (
	CreditCard PaymentMethod = "credit_card"
	DebitCard  PaymentMethod = "debit_card"
	Pix        PaymentMethod = "pix"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationError defines model for ValidationError.
type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ValidationErrorResponse defines model for ValidationErrorResponse.
type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validation_errors"`
}

// SystemInfo defines model for SystemInfo.
type SystemInfo struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

// HealthcheckResponse defines model for HealthcheckResponse.
type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"system_info"`
}

// Movie defines model for Movie.
type Movie struct {
	Id              int                 `json:"id"`
	Title           string              `json:"title"`
	Description     *string             `json:"description"`
	PosterUrl       *string             `json:"poster_url"`
	BackdropUrl     *string             `json:"backdrop_url"`
	ReleaseDate     *openapi_types.Date `json:"release_date"`
	DurationMinutes *int                `json:"duration_minutes"`
	Rating          *string             `json:"rating"`
	Genre           *string             `json:"genre"`
	Director        *string             `json:"director"`
	Cast            *string             `json:"cast"`
	IsNowShowing    bool                `json:"is_now_showing"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// MovieDetailResponse defines model for MovieDetailResponse.
type MovieDetailResponse struct {
	Movie
	Showtimes []Showtime `json:"showtimes"`
}

// GetMoviesParams defines parameters for GetMovies.
type GetMoviesParams struct {
	Search *string `json:"search,omitempty" validate:"omitempty,max=100"`
}

// Showtime defines model for Showtime.
type Showtime struct {
	Id             int                `json:"id"`
	MovieId        int                `json:"movie_id"`
	TheaterName    string             `json:"theater_name"`
	ShowDate       openapi_types.Date `json:"show_date"`
	ShowTime       string             `json:"show_time"`
	Price          *float64           `json:"price"`
	AvailableSeats *int               `json:"available_seats"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// GetShowtimesParams defines parameters for GetShowtimes.
type GetShowtimesParams struct {
	Date *openapi_types.Date `json:"date,omitempty"`
}

// FoodItem defines model for FoodItem.
type FoodItem struct {
	Id          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageUrl    *string   `json:"image_url"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookingFoodItemRequest defines model for BookingFoodItemRequest.
type BookingFoodItemRequest struct {
	FoodItemId int `json:"food_item_id" validate:"min=1"`
	Quantity   int `json:"quantity" validate:"min=1,max=100"`
}

// CreateBookingRequest defines model for CreateBookingRequest.
type CreateBookingRequest struct {
	ShowtimeId    int                      `json:"showtime_id" validate:"required,min=1"`
	CustomerName  string                   `json:"customer_name" validate:"required,max=200"`
	CustomerEmail string                   `json:"customer_email" validate:"required,email"`
	CustomerPhone *string                  `json:"customer_phone,omitempty"`
	NumTickets    int                      `json:"num_tickets" validate:"min=1,max=1000"`
	FoodItems     []BookingFoodItemRequest `json:"food_items,omitempty" validate:"omitempty,max=50,dive"`
}

// Booking defines model for Booking.
type Booking struct {
	Id            int       `json:"id"`
	ShowtimeId    int       `json:"showtime_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone *string   `json:"customer_phone"`
	NumTickets    int       `json:"num_tickets"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookingFoodLineItem defines model for BookingFoodLineItem.
type BookingFoodLineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// BookingDetailResponse defines model for BookingDetailResponse.
type BookingDetailResponse struct {
	Booking
	MovieTitle  string                `json:"movie_title"`
	ShowDate    openapi_types.Date    `json:"show_date"`
	ShowTime    string                `json:"show_time"`
	TheaterName string                `json:"theater_name"`
	TicketPrice float64               `json:"ticket_price"`
	FoodItems   []BookingFoodLineItem `json:"food_items"`
}

// PaymentRequest defines model for PaymentRequest.
type PaymentRequest struct {
	Method PaymentMethod `json:"method" validate:"required,oneof=credit_card debit_card pix"`
}

// PaymentResponse defines model for PaymentResponse.
type PaymentResponse struct {
	Id          int           `json:"id"`
	BookingId   int           `json:"booking_id"`
	Method      PaymentMethod `json:"method"`
	Amount      float64       `json:"amount"`
	Currency    string        `json:"currency"`
	Status      string        `json:"status"`
	Reference   string        `json:"reference"`
	RedirectUrl *string       `json:"redirect_url,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// UserPreferences defines model for UserPreferences.
type UserPreferences struct {
	Id                         int       `json:"id"`
	UserId                     string    `json:"user_id"`
	Language                   string    `json:"language"`
	NotifyNewReleases          bool      `json:"notify_new_releases"`
	NotifyPromotions           bool      `json:"notify_promotions"`
	NotifyBookingConfirmations bool      `json:"notify_booking_confirmations"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

// UpdatePreferencesRequest defines model for UpdatePreferencesRequest.
type UpdatePreferencesRequest struct {
	Language                   string `json:"language" validate:"required,language"`
	NotifyNewReleases          *bool  `json:"notify_new_releases" validate:"required"`
	NotifyPromotions           *bool  `json:"notify_promotions" validate:"required"`
	NotifyBookingConfirmations *bool  `json:"notify_booking_confirmations" validate:"required"`
}

// RedirectUrlResponse defines model for RedirectUrlResponse.
type RedirectUrlResponse struct {
	RedirectUrl string `json:"redirect_url"`
}

// CreateSessionRequest defines model for CreateSessionRequest.
type CreateSessionRequest struct {
	Code string `json:"code" validate:"required"`
}

// SuccessResponse defines model for SuccessResponse.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// UserResponse defines model for UserResponse.
type UserResponse struct {
	Id             string     `json:"id"`
	Email          string     `json:"email"`
	DisplayName    string     `json:"display_name"`
	PictureUrl     string     `json:"picture_url,omitempty"`
	LastSignedInAt *time.Time `json:"last_signed_in_at,omitempty"`
}
