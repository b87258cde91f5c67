package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/userhub/userhub-api/shared/mailer"
)

// Config holds all account-service settings, parsed from the environment.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"account-service"`
	HTTPAddr    string `env:"HTTP_ADDR"    envDefault:":8080"`

	// ActivationTokenTTL is how long an activation token stays valid after
	// issuance. The boundary is exclusive: a token is expired only strictly
	// after creation time plus the TTL.
	ActivationTokenTTL time.Duration `env:"ACTIVATION_TOKEN_TTL" envDefault:"2h"`
	ResetTokenTTL      time.Duration `env:"RESET_TOKEN_TTL"      envDefault:"1h"`

	Mongo  MongoConfig
	Token  TokenConfig
	SMTP   mailer.Config
	Consul ConsulConfig
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" envDefault:"userhub"`
}

// TokenConfig holds session token signing settings.
type TokenConfig struct {
	Issuer                string        `env:"TOKEN_ISSUER"             envDefault:"account-service"`
	AccessTokenSecret     string        `env:"ACCESS_TOKEN_SECRET,required,notEmpty"`
	RefreshTokenSecret    string        `env:"REFRESH_TOKEN_SECRET,required,notEmpty"`
	AccessTokenExpiresIn  time.Duration `env:"ACCESS_TOKEN_EXPIRES_IN"  envDefault:"15m"`
	RefreshTokenExpiresIn time.Duration `env:"REFRESH_TOKEN_EXPIRES_IN" envDefault:"168h"`
}

// ConsulConfig holds optional service registry settings.
type ConsulConfig struct {
	Enabled        bool   `env:"CONSUL_ENABLED"         envDefault:"false"`
	Address        string `env:"CONSUL_HTTP_ADDR"       envDefault:"127.0.0.1:8500"`
	ServiceAddress string `env:"CONSUL_SERVICE_ADDRESS" envDefault:"127.0.0.1"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
