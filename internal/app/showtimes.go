package app

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) getShowtimesHandler(w http.ResponseWriter, r *http.Request) {
	var params api.GetShowtimesParams

	err := runtime.BindQueryParameter("form", true, false, "date", r.URL.Query(), &params.Date)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("date must be formatted as YYYY-MM-DD"))
		return
	}

	app.GetShowtimes(w, r, params)
}

func (app *Application) GetShowtimes(w http.ResponseWriter, r *http.Request, params api.GetShowtimesParams) {
	var filters domain.ShowtimeFilters
	if params.Date != nil {
		filters.Date = &params.Date.Time
	}

	showtimes, err := app.showtimeRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiShowtimes(showtimes), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiShowtimes(showtimes []*domain.Showtime) []api.Showtime {
	resp := make([]api.Showtime, len(showtimes))

	for i, showtime := range showtimes {
		resp[i] = api.Showtime{
			Id:             showtime.ID,
			MovieId:        showtime.MovieID,
			TheaterName:    showtime.TheaterName,
			ShowDate:       types.Date{Time: showtime.ShowDate},
			ShowTime:       showtime.ShowTime,
			AvailableSeats: showtime.AvailableSeats,
			CreatedAt:      showtime.CreatedAt,
			UpdatedAt:      showtime.UpdatedAt,
		}

		if showtime.Price.Valid {
			price := showtime.Price.Decimal.InexactFloat64()
			resp[i].Price = &price
		}
	}

	return resp
}
