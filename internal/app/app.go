package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/metinatakli/movie-booking-system/internal/events"
	"github.com/metinatakli/movie-booking-system/internal/identity"
	"github.com/metinatakli/movie-booking-system/internal/mailer"
	"github.com/metinatakli/movie-booking-system/internal/payment"
	"github.com/metinatakli/movie-booking-system/internal/repository"
	"github.com/metinatakli/movie-booking-system/internal/telemetry"
	appvalidator "github.com/metinatakli/movie-booking-system/internal/validator"
	"github.com/metinatakli/movie-booking-system/internal/vcs"
	"github.com/stripe/stripe-go/v82"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	wg             sync.WaitGroup

	movieRepo       domain.MovieRepository
	showtimeRepo    domain.ShowtimeRepository
	foodRepo        domain.FoodItemRepository
	bookingRepo     domain.BookingRepository
	paymentRepo     domain.PaymentRepository
	preferencesRepo domain.PreferencesRepository
	accountRepo     domain.AccountRepository

	identity        domain.IdentityProvider
	paymentProvider domain.PaymentProvider
	events          domain.EventPublisher
}

// Repositories groups the persistence dependencies of the application.
type Repositories struct {
	Movies      domain.MovieRepository
	Showtimes   domain.ShowtimeRepository
	FoodItems   domain.FoodItemRepository
	Bookings    domain.BookingRepository
	Payments    domain.PaymentRepository
	Preferences domain.PreferencesRepository
	Accounts    domain.AccountRepository
}

func NewPostgresRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Movies:      repository.NewPostgresMovieRepository(db),
		Showtimes:   repository.NewPostgresShowtimeRepository(db),
		FoodItems:   repository.NewPostgresFoodItemRepository(db),
		Bookings:    repository.NewPostgresBookingRepository(db),
		Payments:    repository.NewPostgresPaymentRepository(db),
		Preferences: repository.NewPostgresPreferencesRepository(db),
		Accounts:    repository.NewPostgresAccountRepository(db),
	}
}

// Providers groups the external services the application talks to.
type Providers struct {
	Identity domain.IdentityProvider
	Payment  domain.PaymentProvider
	Events   domain.EventPublisher
	Mailer   mailer.Mailer
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	repos Repositories,
	providers Providers) *Application {

	return &Application{
		config:          cfg,
		logger:          logger,
		validator:       validator,
		mailer:          providers.Mailer,
		sessionManager:  sessionManager,
		movieRepo:       repos.Movies,
		showtimeRepo:    repos.Showtimes,
		foodRepo:        repos.FoodItems,
		bookingRepo:     repos.Bookings,
		paymentRepo:     repos.Payments,
		preferencesRepo: repos.Preferences,
		accountRepo:     repos.Accounts,
		identity:        providers.Identity,
		paymentProvider: providers.Payment,
		events:          providers.Events,
	}
}

func Run() error {
	cfg, displayVersion, err := LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Options{
		CollectorUrl: cfg.OtelCollectorUrl,
		Version:      version,
		Environment:  cfg.Env,
	})
	if err != nil {
		return err
	}

	logger := telemetry.NewLogger(slog.NewTextHandler(os.Stdout, nil), cfg.OtelCollectorUrl != "")

	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Error("failed to shutdown telemetry providers", "error", err)
		}
	}()

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	paymentProvider, err := newPaymentProvider(cfg.Payment)
	if err != nil {
		return err
	}

	var publisher domain.EventPublisher = events.NoopPublisher{}

	if cfg.AMQPUrl != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPUrl)
		if err != nil {
			return err
		}
		defer amqpPublisher.Close()

		publisher = amqpPublisher
	} else {
		logger.Info("AMQP URL not set, booking events will not be published")
	}

	sessionManager := NewSessionManager(redisClient, cfg.SecureCookies)

	providers := Providers{
		Identity: identity.NewClient(cfg.Identity.ApiUrl, cfg.Identity.ApiKey),
		Payment:  paymentProvider,
		Events:   publisher,
		Mailer: mailer.NewSMTPMailer(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.Sender,
		),
	}

	app := NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		sessionManager,
		NewPostgresRepositories(db),
		providers,
	)

	return app.serve()
}

func newPaymentProvider(cfg PaymentConfig) (domain.PaymentProvider, error) {
	switch cfg.Provider {
	case PaymentProviderSimulated:
		return payment.NewSimulatedProvider(cfg.SimulatedDelay, cfg.Currency), nil
	case PaymentProviderStripe:
		stripe.Key = cfg.StripeKey
		return payment.NewStripeProvider(cfg.CancelUrl, cfg.SuccessUrl, cfg.Currency), nil
	}

	return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
}

// WaitBackground blocks until every task started with background has returned.
func (app *Application) WaitBackground() {
	app.wg.Wait()
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		app.logger.Info("completing background tasks", "addr", srv.Addr)

		app.WaitBackground()
		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
