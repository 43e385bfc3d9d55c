package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/flagx"
	"github.com/dmitrijs2005/storeconsole/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	ServerAddr          string         `json:"server_addr"`
	Transport           string         `json:"transport"`
	SessionBackend      string         `json:"session_backend"`
	SessionPath         string         `json:"session_path"`
	ExpiryWarning       timex.Duration `json:"expiry_warning"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	SessionLifetime     timex.Duration `json:"session_lifetime"`
	Verbose             *bool          `json:"verbose"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Fields missing from the file keep their current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerAddr, jc.ServerAddr)
	setString(&cfg.Transport, jc.Transport)
	setString(&cfg.SessionBackend, jc.SessionBackend)
	setString(&cfg.SessionPath, jc.SessionPath)
	setDuration(&cfg.ExpiryWarning, jc.ExpiryWarning)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.SessionLifetime, jc.SessionLifetime)
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
