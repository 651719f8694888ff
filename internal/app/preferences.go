package app

import (
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

func (app *Application) GetUserPreferences(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	prefs, err := app.preferencesRepo.GetOrCreate(r.Context(), domain.DefaultPreferences(user.ID))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiPreferences(prefs), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdateUserPreferences replaces all four settings. A missing row is created.
func (app *Application) UpdateUserPreferences(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	var input api.UpdatePreferencesRequest

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

	prefs := domain.UserPreferences{
		UserID:                     user.ID,
		Language:                   input.Language,
		NotifyNewReleases:          *input.NotifyNewReleases,
		NotifyPromotions:           *input.NotifyPromotions,
		NotifyBookingConfirmations: *input.NotifyBookingConfirmations,
	}

	err = app.preferencesRepo.Upsert(r.Context(), &prefs)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiPreferences(&prefs), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiPreferences(prefs *domain.UserPreferences) api.UserPreferences {
	return api.UserPreferences{
		Id:                         prefs.ID,
		UserId:                     prefs.UserID,
		Language:                   prefs.Language,
		NotifyNewReleases:          prefs.NotifyNewReleases,
		NotifyPromotions:           prefs.NotifyPromotions,
		NotifyBookingConfirmations: prefs.NotifyBookingConfirmations,
		CreatedAt:                  prefs.CreatedAt,
		UpdatedAt:                  prefs.UpdatedAt,
	}
}
