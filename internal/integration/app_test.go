package integration_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/app"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/metinatakli/movie-booking-system/internal/events"
	"github.com/metinatakli/movie-booking-system/internal/identity"
	"github.com/metinatakli/movie-booking-system/internal/mailer"
	"github.com/metinatakli/movie-booking-system/internal/payment"
	appvalidator "github.com/metinatakli/movie-booking-system/internal/validator"
	"github.com/stretchr/testify/require"
)

type TestApp struct {
	App      *app.Application
	DB       *pgxpool.Pool
	Mailer   *mailer.MockMailer
	Identity *identity.MemoryProvider
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := appvalidator.NewValidator()
	mailer := mailer.NewMockMailer()
	identityProvider := identity.NewMemoryProvider()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient, false)

	application := app.NewApp(
		cfg,
		logger,
		validator,
		sessionManager,
		app.NewPostgresRepositories(db),
		app.Providers{
			Identity: identityProvider,
			Payment:  payment.NewSimulatedProvider(0, "brl"),
			Events:   events.NoopPublisher{},
			Mailer:   mailer,
		},
	)

	return &TestApp{
		App:      application,
		DB:       db,
		Mailer:   mailer,
		Identity: identityProvider,
	}, nil
}

// login signs user in through POST /sessions and returns the session cookies.
func (a *TestApp) login(t testing.TB, user domain.User) []*http.Cookie {
	code := uuid.NewString()
	a.Identity.AddCode(code, user)

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"code": "`+code+`"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	a.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed")

	cookies := res.Cookies()
	require.NotEmpty(t, cookies, "login should set a session cookie")

	return cookies
}
