// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the StoreConsole development backend.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the JSON HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC mirror.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: lifetime of issued tokens.
//   - UsersFile: optional JSON user directory; the built-in seed is used when empty.
//   - DatabaseDSN: optional PostgreSQL DSN (pgx); users live in memory when empty.
type Config struct {
	EndpointAddrHTTP            string
	EndpointAddrGRPC            string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	UsersFile                   string
	DatabaseDSN                 string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.UsersFile = ""
	c.DatabaseDSN = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
