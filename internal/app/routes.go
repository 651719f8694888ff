package app

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movie-booking-system/internal/telemetry"
	"github.com/oapi-codegen/runtime"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(telemetry.ServiceName, otelchi.WithChiRoutes(r)))
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/healthcheck", app.GetHealth)
	r.Get("/openapi.json", app.GetOpenAPISpec)

	r.Get("/movies", app.getMoviesHandler)
	r.Get("/movies/{movieId}", app.withIdParam("movieId", app.GetMovieById))
	r.Get("/showtimes", app.getShowtimesHandler)
	r.Get("/food-items", app.GetFoodItems)

	r.Post("/bookings", app.CreateBooking)
	r.Get("/bookings/{bookingId}", app.withIdParam("bookingId", app.GetBookingById))
	r.Post("/bookings/{bookingId}/payment", app.withIdParam("bookingId", app.PayBooking))

	r.Get("/oauth/google/redirect_url", app.GetOAuthRedirectUrl)
	r.Post("/sessions", app.CreateSession)
	r.Get("/logout", app.Logout)

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Get("/users/me", app.GetCurrentUser)
		r.Get("/user-preferences", app.GetUserPreferences)
		r.Put("/user-preferences", app.UpdateUserPreferences)
		r.Delete("/user-account", app.DeleteUserAccount)
	})

	return r
}

// withIdParam binds an integer path parameter the way generated chi servers do and
// passes it to next.
func (app *Application) withIdParam(
	name string,
	next func(http.ResponseWriter, *http.Request, int)) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		var id int

		err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid format for parameter %s", name))
			return
		}

		next(w, r, id)
	}
}
