package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

const oauthProviderGoogle = "google"

func (app *Application) GetOAuthRedirectUrl(w http.ResponseWriter, r *http.Request) {
	redirectUrl, err := app.identity.RedirectURL(r.Context(), oauthProviderGoogle)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.RedirectUrlResponse{RedirectUrl: redirectUrl}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CreateSession exchanges an OAuth authorization code for an identity session token and
// keeps the token in the server-side session.
func (app *Application) CreateSession(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateSessionRequest

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

	token, err := app.identity.ExchangeCode(r.Context(), input.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAuthCode):
			logger.Warn("authorization code rejected by identity provider")
			app.unauthorizedResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// To help prevent session fixation attacks we should renew the session token after any privilege level change.
	// https://github.com/OWASP/CheatSheetSeries/blob/master/cheatsheets/Session_Management_Cheat_Sheet.md#renew-the-session-id-after-any-privilege-level-change
	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), SessionKeyIdentityToken.String(), token)

	err = app.writeJSON(w, http.StatusOK, api.SuccessResponse{Success: true}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	resp := api.UserResponse{
		Id:             user.ID,
		Email:          user.Email,
		DisplayName:    user.DisplayName,
		PictureUrl:     user.PictureUrl,
		LastSignedInAt: user.LastSignedInAt,
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// Logout succeeds for anonymous sessions too.
func (app *Application) Logout(w http.ResponseWriter, r *http.Request) {
	app.endSession(r)

	err := app.writeJSON(w, http.StatusOK, api.SuccessResponse{Success: true}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// endSession revokes the identity token, if any, and destroys the local session. A failed
// revocation is logged and does not keep the local session alive.
func (app *Application) endSession(r *http.Request) {
	logger := app.contextGetLogger(r)

	token := app.sessionManager.GetString(r.Context(), SessionKeyIdentityToken.String())
	if token != "" {
		err := app.identity.RevokeSession(r.Context(), token)
		if err != nil {
			logger.Error("failed to revoke identity session", "error", err)
		}
	}

	err := app.sessionManager.Destroy(r.Context())
	if err != nil {
		logger.Error("failed to destroy session", "error", err)
	}
}
