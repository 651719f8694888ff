package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Showtime struct {
	ID             int
	MovieID        int
	TheaterName    string
	ShowDate       time.Time
	ShowTime       string
	Price          decimal.NullDecimal
	AvailableSeats *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasCapacityFor reports whether numTickets can be sold. A nil seat count means the
// showtime has no seat limit.
func (s *Showtime) HasCapacityFor(numTickets int) bool {
	if s.AvailableSeats == nil {
		return true
	}

	return *s.AvailableSeats >= numTickets
}

// TicketPrice returns the unit ticket price, treating a missing price as zero.
func (s *Showtime) TicketPrice() decimal.Decimal {
	if !s.Price.Valid {
		return decimal.Zero
	}

	return s.Price.Decimal
}

type ShowtimeFilters struct {
	Date *time.Time
}

type ShowtimeRepository interface {
	GetAll(ctx context.Context, filters ShowtimeFilters) ([]*Showtime, error)
	GetById(ctx context.Context, id int) (*Showtime, error)
	GetByMovieId(ctx context.Context, movieId int) ([]*Showtime, error)
}
