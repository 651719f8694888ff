package app

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Identity         IdentityConfig
	Payment          PaymentConfig
	AMQPUrl          string
	OtelCollectorUrl string
	SecureCookies    bool
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type IdentityConfig struct {
	ApiUrl string
	ApiKey string
}

type PaymentConfig struct {
	Provider       string
	SimulatedDelay time.Duration
	StripeKey      string
	SuccessUrl     string
	CancelUrl      string
	Currency       string
}

const (
	PaymentProviderSimulated = "simulated"
	PaymentProviderStripe    = "stripe"
)

// LoadConfig reads an optional .env file and then parses flags whose defaults come from
// the environment. The returned bool reports whether -version was requested.
func LoadConfig(args []string) (Config, bool, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, false, err
	}

	var cfg Config

	flags := flag.NewFlagSet("api", flag.ContinueOnError)

	flags.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flags.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")

	flags.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	flags.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flags.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	flags.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", "localhost:6379"), "Redis URL")
	flags.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flags.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flags.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flags.StringVar(&cfg.SMTP.Host, "smtp-host", envString("SMTP_HOST", "sandbox.smtp.mailtrap.io"), "SMTP host")
	flags.IntVar(&cfg.SMTP.Port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	flags.StringVar(&cfg.SMTP.Username, "smtp-username", envString("SMTP_USERNAME", ""), "SMTP username")
	flags.StringVar(&cfg.SMTP.Password, "smtp-password", envString("SMTP_PASSWORD", ""), "SMTP password")
	flags.StringVar(&cfg.SMTP.Sender, "smtp-sender", envString("SMTP_SENDER", "CineX <no-reply@cinex.example.com>"), "SMTP sender")

	flags.StringVar(&cfg.Identity.ApiUrl, "identity-api-url", envString("IDENTITY_API_URL", ""), "Users service API URL")
	flags.StringVar(&cfg.Identity.ApiKey, "identity-api-key", envString("IDENTITY_API_KEY", ""), "Users service API key")

	flags.StringVar(&cfg.Payment.Provider, "payment-provider", envString("PAYMENT_PROVIDER", PaymentProviderSimulated), "Payment provider (simulated|stripe)")
	flags.DurationVar(&cfg.Payment.SimulatedDelay, "payment-simulated-delay", envDuration("PAYMENT_SIMULATED_DELAY", 2*time.Second), "Simulated payment processing time")
	flags.StringVar(&cfg.Payment.StripeKey, "stripe-key", envString("STRIPE_KEY", ""), "Stripe secret key")
	flags.StringVar(&cfg.Payment.SuccessUrl, "payment-success-url", envString("PAYMENT_SUCCESS_URL", "https://example.com/success.html"), "Payment success page")
	flags.StringVar(&cfg.Payment.CancelUrl, "payment-cancel-url", envString("PAYMENT_CANCEL_URL", "https://example.com/failure.html"), "Payment cancel page")
	flags.StringVar(&cfg.Payment.Currency, "payment-currency", envString("PAYMENT_CURRENCY", "brl"), "Payment currency")

	flags.StringVar(&cfg.AMQPUrl, "amqp-url", envString("AMQP_URL", ""), "RabbitMQ URL, events are not published when empty")
	flags.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector endpoint")
	flags.BoolVar(&cfg.SecureCookies, "secure-cookies", envBool("SECURE_COOKIES", true), "Set the Secure attribute on session cookies")

	displayVersion := flags.Bool("version", false, "Display version and exit")

	err = flags.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	return cfg, *displayVersion, nil
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func envBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}
