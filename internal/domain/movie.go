package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID              int
	Title           string
	Description     *string
	PosterUrl       *string
	BackdropUrl     *string
	ReleaseDate     *time.Time
	DurationMinutes *int
	Rating          *string
	Genre           *string
	Director        *string
	Cast            *string
	IsNowShowing    bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type MovieFilters struct {
	Search string
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, error)
	GetById(ctx context.Context, id int) (*Movie, error)
}
