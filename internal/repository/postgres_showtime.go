package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

const showtimeColumns = `id, movie_id, theater_name, show_date, to_char(show_time, 'HH24:MI'),
	price, available_seats, created_at, updated_at`

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetAll(ctx context.Context, filters domain.ShowtimeFilters) ([]*domain.Showtime, error) {
	query := `SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE $1::date IS NULL OR show_date = $1::date
		ORDER BY show_date, show_time, id`

	return p.queryShowtimes(ctx, query, filters.Date)
}

func (p *PostgresShowtimeRepository) GetByMovieId(ctx context.Context, movieId int) ([]*domain.Showtime, error) {
	query := `SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE movie_id = $1
		ORDER BY show_date, show_time, id`

	return p.queryShowtimes(ctx, query, movieId)
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	showtime, err := scanShowtime(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return showtime, nil
}

func (p *PostgresShowtimeRepository) queryShowtimes(ctx context.Context, query string, args ...any) ([]*domain.Showtime, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := []*domain.Showtime{}

	for rows.Next() {
		showtime, err := scanShowtime(rows)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}

func scanShowtime(row scanner) (*domain.Showtime, error) {
	var showtime domain.Showtime

	err := row.Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.TheaterName,
		&showtime.ShowDate,
		&showtime.ShowTime,
		&showtime.Price,
		&showtime.AvailableSeats,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &showtime, nil
}
