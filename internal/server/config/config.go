// Package config handles configuration for the server component:
// defaults, an optional YAML/JSON file, .env and environment variables, and
// command-line flags, merged with viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds runtime settings for the Vitrum server. It is built once at
// startup and passed by pointer to the components that need it; nothing
// mutates it afterwards.
//
// Fields:
//   - AppName / Environment: reported by the root health endpoint; "production"
//     switches logging and gin to release mode.
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses.
//   - APIPrefix: mount point of the REST routes.
//   - DatabaseDSN: database URL, postgres://, sqlite:// or mysql://.
//   - SecretKey / AuthAlgorithm: HMAC secret and JWT algorithm. Do not use the
//     default secret in prod.
//   - AccessTokenValidityDuration: token lifetime.
//   - CORSAllowOrigins / CORSAllowAll: browser origins allowed to call the API.
type Config struct {
	AppName                     string
	Environment                 string
	EndpointAddrHTTP            string
	EndpointAddrGRPC            string
	APIPrefix                   string
	DatabaseDSN                 string
	SecretKey                   string
	AuthAlgorithm               string
	AccessTokenValidityDuration time.Duration
	CORSAllowOrigins            []string
	CORSAllowAll                bool
	LogLevel                    string
	AutoMigrate                 bool
	HealthCheckInterval         time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.AppName = "Vitrum API"
	c.Environment = "development"
	c.EndpointAddrHTTP = ":8000"
	c.EndpointAddrGRPC = ":50051"
	c.APIPrefix = "/api"
	c.DatabaseDSN = "sqlite://vitrum.db"
	c.SecretKey = "dev-insecure-secret-change"
	c.AuthAlgorithm = "HS256"
	c.AccessTokenValidityDuration = 720 * time.Minute
	c.CORSAllowOrigins = []string{
		"http://localhost:8080",
		"http://localhost:4321",
		"http://localhost:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:4321",
		"http://127.0.0.1:3000",
	}
	c.CORSAllowAll = false
	c.LogLevel = "info"
	c.AutoMigrate = true
	c.HealthCheckInterval = 10 * time.Second
}

// IsProduction reports whether the server runs in the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, fmt.Errorf("token ttl must be positive, got %s", c.AccessTokenValidityDuration))
	}
	if _, ok := jwt.GetSigningMethod(c.AuthAlgorithm).(*jwt.SigningMethodHMAC); !ok {
		errs = append(errs, fmt.Errorf("unsupported auth algorithm %q", c.AuthAlgorithm))
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		errs = append(errs, fmt.Errorf("api prefix must start with /, got %q", c.APIPrefix))
	}
	if c.HealthCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("health check interval must be positive, got %s", c.HealthCheckInterval))
	}
	return errors.Join(errs...)
}
