package config

import (
	"fmt"
	"time"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"

	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds runtime settings for the StoreConsole client.
//
// Fields:
//   - ServerAddr: backend address; host:port or a full http(s) URL.
//   - Transport: "http" or "grpc".
//   - SessionBackend: where the session is kept: "sqlite", "file" or "memory".
//   - SessionPath: SQLite database or JSON file for the session record.
//   - ExpiryWarning: lead time before expiry at which the CLI warns.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: upper bound of every remote call.
//   - SessionLifetime: assumed lifetime when the server sends no expiry.
//   - Verbose: enables debug logging.
type Config struct {
	ServerAddr          string
	Transport           string
	SessionBackend      string
	SessionPath         string
	ExpiryWarning       time.Duration
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	SessionLifetime     time.Duration
	Verbose             bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "127.0.0.1:8080"
	c.Transport = TransportHTTP
	c.SessionBackend = BackendSQLite
	c.SessionPath = "storeconsole.db"
	c.ExpiryWarning = 5 * time.Minute
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.SessionLifetime = 8 * time.Hour
	c.Verbose = false
}

// Validate rejects unknown transports and session backends.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportHTTP, TransportGRPC:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	switch c.SessionBackend {
	case BackendSQLite, BackendFile:
		if c.SessionPath == "" {
			return fmt.Errorf("session backend %q needs a path", c.SessionBackend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
