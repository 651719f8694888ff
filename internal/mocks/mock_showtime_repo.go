package mocks

import (
	"context"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type MockShowtimeRepo struct {
	domain.ShowtimeRepository
	GetAllFunc       func(ctx context.Context, filters domain.ShowtimeFilters) ([]*domain.Showtime, error)
	GetByIdFunc      func(ctx context.Context, id int) (*domain.Showtime, error)
	GetByMovieIdFunc func(ctx context.Context, movieId int) ([]*domain.Showtime, error)
}

func (m *MockShowtimeRepo) GetAll(ctx context.Context, filters domain.ShowtimeFilters) ([]*domain.Showtime, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockShowtimeRepo) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockShowtimeRepo) GetByMovieId(ctx context.Context, movieId int) ([]*domain.Showtime, error) {
	return m.GetByMovieIdFunc(ctx, movieId)
}
