package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

const movieColumns = `id, title, description, poster_url, backdrop_url, release_date, duration_minutes,
	rating, genre, director, "cast", is_now_showing, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies
		WHERE $1::text = ''
			OR title ILIKE '%' || $1 || '%'
			OR description ILIKE '%' || $1 || '%'
			OR genre ILIKE '%' || $1 || '%'
			OR director ILIKE '%' || $1 || '%'
			OR "cast" ILIKE '%' || $1 || '%'
		ORDER BY is_now_showing DESC, release_date DESC NULLS LAST, id`

	term := likeEscaper.Replace(strings.TrimSpace(filters.Search))

	rows, err := p.db.Query(ctx, query, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return movie, nil
}

func scanMovie(row scanner) (*domain.Movie, error) {
	var movie domain.Movie

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.PosterUrl,
		&movie.BackdropUrl,
		&movie.ReleaseDate,
		&movie.DurationMinutes,
		&movie.Rating,
		&movie.Genre,
		&movie.Director,
		&movie.Cast,
		&movie.IsNowShowing,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}
