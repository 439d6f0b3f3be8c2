// Package config hydrates client settings with env > file > default
// precedence.
//
// Environment variables use the AGORA_ prefix. Flat keys cover the common
// settings:
//
//	AGORA_API_URL          base URL of the node's REST gateway
//	AGORA_APPKEY           application key sent as a bearer token
//	AGORA_MARKET_URL       explicit base URL for the market API
//	AGORA_PAYMENT_URL      explicit base URL for the payment API
//	AGORA_TIMEOUT_SECONDS  whole-request timeout, 0 disables
//	AGORA_USER_AGENT       User-Agent header override
//
// Nested keys use double underscores, so AGORA_THROTTLE__RPS maps to
// throttle.rps. Files may be YAML, JSON, or TOML, selected by extension.
package config

import (
	"fmt"
	"time"

	"github.com/agoranet/go-agora-client/validate"
	"github.com/agoranet/go-agora-client/web"
)

// Config holds every client-level option.
type Config struct {
	APIURL         string `koanf:"apiUrl" json:"apiUrl" validate:"required,url"`
	AppKey         string `koanf:"appKey" json:"appKey"`
	TimeoutSeconds int    `koanf:"timeoutSeconds" json:"timeoutSeconds" validate:"gte=0"`
	UserAgent      string `koanf:"userAgent" json:"userAgent"`

	Throttle ThrottleConfig `koanf:"throttle" json:"throttle"`
	Market   ServiceConfig  `koanf:"market" json:"market"`
	Payment  ServiceConfig  `koanf:"payment" json:"payment"`
}

// ThrottleConfig paces outgoing requests. Zero RPS leaves pacing off.
type ThrottleConfig struct {
	RPS   int `koanf:"rps" json:"rps" validate:"gte=0"`
	Burst int `koanf:"burst" json:"burst" validate:"gte=0"`
}

// ServiceConfig overrides the mount point of one node API. An empty URL means
// the service resolves against the core API URL.
type ServiceConfig struct {
	URL string `koanf:"url" json:"url" validate:"omitempty,url"`
}

// DefaultConfig returns the settings used when nothing else is supplied.
func DefaultConfig() Config {
	return Config{
		APIURL: web.DefaultAPIURL,
	}
}

// Validate checks the assembled snapshot before it is turned into a client.
func (c Config) Validate() error {
	if err := validate.Check(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Throttle.RPS > 0 && c.Throttle.Burst == 0 {
		return fmt.Errorf("config: throttle.burst must be set when throttle.rps is")
	}
	return nil
}

// ClientOptions translates the snapshot into options for [web.Build]. Zero
// values contribute nothing, so defaults keep their meaning.
func (c Config) ClientOptions() []web.Option {
	opts := []web.Option{web.WithAPIURL(c.APIURL)}

	if c.AppKey != "" {
		opts = append(opts, web.WithAppKey(c.AppKey))
	}
	if c.TimeoutSeconds > 0 {
		opts = append(opts, web.WithTimeout(time.Duration(c.TimeoutSeconds)*time.Second))
	}
	if c.UserAgent != "" {
		opts = append(opts, web.WithUserAgent(c.UserAgent))
	}
	if c.Throttle.RPS > 0 {
		opts = append(opts, web.WithThrottle(c.Throttle.RPS, c.Throttle.Burst))
	}

	return opts
}
