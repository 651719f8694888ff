package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) getMoviesHandler(w http.ResponseWriter, r *http.Request) {
	var params api.GetMoviesParams

	err := runtime.BindQueryParameter("form", true, false, "search", r.URL.Query(), &params.Search)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid format for parameter search"))
		return
	}

	app.GetMovies(w, r, params)
}

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request, params api.GetMoviesParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	var filters domain.MovieFilters
	if params.Search != nil {
		filters.Search = *params.Search
	}

	movies, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.Movie, len(movies))
	for i, movie := range movies {
		resp[i] = toApiMovie(movie)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request, movieId int) {
	if movieId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("movie ID must be greater than zero"))
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	showtimes, err := app.showtimeRepo.GetByMovieId(r.Context(), movieId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieDetailResponse{
		Movie:     toApiMovie(movie),
		Showtimes: toApiShowtimes(showtimes),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiMovie(movie *domain.Movie) api.Movie {
	if movie == nil {
		return api.Movie{}
	}

	apiMovie := api.Movie{
		Id:              movie.ID,
		Title:           movie.Title,
		Description:     movie.Description,
		PosterUrl:       movie.PosterUrl,
		BackdropUrl:     movie.BackdropUrl,
		DurationMinutes: movie.DurationMinutes,
		Rating:          movie.Rating,
		Genre:           movie.Genre,
		Director:        movie.Director,
		Cast:            movie.Cast,
		IsNowShowing:    movie.IsNowShowing,
		CreatedAt:       movie.CreatedAt,
		UpdatedAt:       movie.UpdatedAt,
	}

	if movie.ReleaseDate != nil {
		apiMovie.ReleaseDate = &types.Date{Time: *movie.ReleaseDate}
	}

	return apiMovie
}
