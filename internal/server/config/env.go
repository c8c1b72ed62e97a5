package config

import (
	"github.com/caarlos0/env/v11"
)

// envConfig is an intermediate DTO used only for reading environment
// variables. Pointer fields stay nil when the variable is unset, so the
// overlay never clobbers defaults. JWT_EXPIRES_IN is read as a string
// because it accepts a "d" day suffix ("7d") on top of Go duration syntax.
type envConfig struct {
	EndpointAddr   *string `env:"ADDRESS"`
	DatabaseDSN    *string `env:"DATABASE_DSN"`
	SecretKey      *string `env:"JWT_SECRET"`
	TokenValidity  *string `env:"JWT_EXPIRES_IN"`
	BcryptCost     *int    `env:"BCRYPT_COST"`
	S3RootUser     *string `env:"S3_ROOT_USER"`
	S3RootPassword *string `env:"S3_ROOT_PASSWORD"`
	S3Bucket       *string `env:"S3_BUCKET"`
	S3Region       *string `env:"S3_REGION"`
	S3BaseEndpoint *string `env:"S3_BASE_ENDPOINT"`
	AuthRateLimit  *int    `env:"AUTH_RATE_LIMIT"`
	AuthRateBurst  *int    `env:"AUTH_RATE_BURST"`
}

// parseEnv overlays values from environment variables onto the provided
// Config. Malformed values panic: the process must not come up with a
// half-applied configuration.
func parseEnv(config *Config) {
	c := &envConfig{}
	if err := env.Parse(c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.TokenValidity != nil {
		d, err := ParseDuration(*c.TokenValidity)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.S3RootUser != nil {
		config.S3RootUser = *c.S3RootUser
	}
	if c.S3RootPassword != nil {
		config.S3RootPassword = *c.S3RootPassword
	}
	if c.S3Bucket != nil {
		config.S3Bucket = *c.S3Bucket
	}
	if c.S3Region != nil {
		config.S3Region = *c.S3Region
	}
	if c.S3BaseEndpoint != nil {
		config.S3BaseEndpoint = *c.S3BaseEndpoint
	}
	if c.AuthRateLimit != nil {
		config.AuthRateLimit = *c.AuthRateLimit
	}
	if c.AuthRateBurst != nil {
		config.AuthRateBurst = *c.AuthRateBurst
	}
}
