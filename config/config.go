package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"

	"github.com/vinyasa/studio/auth"
)

// App is the process configuration, loaded from the environment.
type App struct {
	Server   Server
	Database Database
	Auth     Auth
}

type Server struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envDefault:"8080"`
}

// Database satisfies the persistence client's config interface.
type Database struct {
	// DSN is passed straight to the sqlite driver.
	DSN         string        `env:"DATABASE_DSN" envDefault:"file:studio.db?cache=shared"`
	Driver      string        `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	Debug       bool          `env:"DATABASE_DEBUG"`
	PingTimeout time.Duration `env:"DATABASE_PING_TIMEOUT" envDefault:"5s"`
}

// Auth satisfies the auth.Config interface so it can be handed to the
// authenticator and the token middleware without adapters.
type Auth struct {
	SigningKey      string   `env:"AUTH_SIGNING_KEY"`
	SigningMethod   string   `env:"AUTH_SIGNING_METHOD" envDefault:"HS256"`
	ContextKey      string   `env:"AUTH_CONTEXT_KEY" envDefault:"user"`
	TokenExpiration int      `env:"AUTH_TOKEN_EXPIRATION" envDefault:"24"`
	TokenLookup     string   `env:"AUTH_TOKEN_LOOKUP" envDefault:"header:Authorization"`
	AuthScheme      string   `env:"AUTH_SCHEME" envDefault:"Bearer"`
	Issuer          string   `env:"AUTH_ISSUER" envDefault:"studio"`
	Audience        []string `env:"AUTH_AUDIENCE" envSeparator:","`
}

var _ auth.Config = Auth{}

// New loads and validates configuration from the environment.
func New() (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to parse environment configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration")
	}

	return cfg, nil
}

func (c *App) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

func (d Database) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.DSN, validation.Required),
	)
}

func (a Auth) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.SigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&a.SigningMethod, validation.Required, validation.In("HS256")),
		validation.Field(&a.TokenExpiration, validation.Required, validation.Min(1)),
	)
}

func (d Database) GetDSN() string { return d.DSN }

func (d Database) GetDriver() string { return d.Driver }

func (d Database) GetServer() string { return d.DSN }

func (d Database) GetDebug() bool { return d.Debug }

func (d Database) GetPingTimeout() time.Duration { return d.PingTimeout }

func (d Database) GetOtelIdentifier() string { return "" }

func (a Auth) GetSigningKey() string { return a.SigningKey }

func (a Auth) GetSigningMethod() string { return a.SigningMethod }

func (a Auth) GetContextKey() string { return a.ContextKey }

func (a Auth) GetTokenExpiration() int { return a.TokenExpiration }

func (a Auth) GetTokenLookup() string { return a.TokenLookup }

func (a Auth) GetAuthScheme() string { return a.AuthScheme }

func (a Auth) GetIssuer() string { return a.Issuer }

func (a Auth) GetAudience() []string { return a.Audience }
