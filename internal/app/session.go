package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type sessionKey string

const (
	SessionKeyIdentityToken = sessionKey("identityToken")
)

func (s sessionKey) String() string {
	return string(s)
}

type contextKey string

const (
	userContextKey   = contextKey("user")
	loggerContextKey = contextKey("logger")
)

func (app *Application) contextSetUser(r *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

func (app *Application) contextGetUser(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userContextKey).(*domain.User)
	if !ok {
		panic("missing user value in request context")
	}

	return user
}

func (app *Application) contextSetLogger(r *http.Request, logger *slog.Logger) *http.Request {
	ctx := context.WithValue(r.Context(), loggerContextKey, logger)
	return r.WithContext(ctx)
}

// contextGetLogger falls back to the application logger for requests that did not pass
// through the logging middleware.
func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}

// sessionUser resolves the user behind the identity token stored in the session, if any.
// It returns nil without error for anonymous requests and for expired identity sessions.
func (app *Application) sessionUser(r *http.Request) (*domain.User, error) {
	token := app.sessionManager.GetString(r.Context(), SessionKeyIdentityToken.String())
	if token == "" {
		return nil, nil
	}

	user, err := app.identity.ResolveSession(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSession) {
			app.sessionManager.Remove(r.Context(), SessionKeyIdentityToken.String())
			return nil, nil
		}

		return nil, err
	}

	return user, nil
}
