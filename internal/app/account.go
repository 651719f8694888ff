package app

import (
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
)

// DeleteUserAccount removes the caller's preferences and every booking placed with the
// caller's email, then ends the session.
func (app *Application) DeleteUserAccount(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	user := app.contextGetUser(r)

	err := app.accountRepo.DeleteUserData(r.Context(), user.ID, user.Email)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.endSession(r)

	logger.Info("user account data deleted", "user_id", user.ID)

	err = app.writeJSON(w, http.StatusOK, api.SuccessResponse{Success: true}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
