package klogs

import (
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zeebo/errs"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrConfig is returned for a configuration that cannot produce a client.
var ErrConfig = errs.Class("config")

const (
	EnvAPIKey    = "KLOGS_API_KEY"
	EnvSecretKey = "KLOGS_SECRET_KEY"
	EnvBaseURL   = "KLOGS_BASE_URL"
	EnvTimeout   = "KLOGS_TIMEOUT"
)

type Config struct {
	APIKey    string `validate:"required"`
	SecretKey string `validate:"required"`
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string `validate:"required,http_url"`
	// AdditionalHeaders are sent with every request and override the
	// authentication headers on a collision.
	AdditionalHeaders map[string]string
	// Timeout bounds each call. Zero means no timeout.
	Timeout time.Duration `validate:"gte=0"`

	Transport      http.RoundTripper    `validate:"-"`
	Logger         *zap.Logger          `validate:"-"`
	TracerProvider trace.TracerProvider `validate:"-"`
	MeterProvider  metric.MeterProvider `validate:"-"`
}

var validate = validator.New()

// Validate checks the configuration as NewClient would see it, after
// defaults are applied.
func (c Config) Validate() error {
	if err := validate.Struct(c.withDefaults()); err != nil {
		return ErrConfig.Wrap(err)
	}
	return nil
}

// withDefaults returns a copy with defaults filled in. The header map is
// copied so later changes by the caller do not leak into a client.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.AdditionalHeaders != nil {
		headers := make(map[string]string, len(c.AdditionalHeaders))
		for k, v := range c.AdditionalHeaders {
			headers[k] = v
		}
		c.AdditionalHeaders = headers
	}
	return c
}

// ConfigFromEnv builds a Config from KLOGS_API_KEY, KLOGS_SECRET_KEY,
// KLOGS_BASE_URL and KLOGS_TIMEOUT. The timeout uses time.ParseDuration
// syntax, e.g. "30s".
func ConfigFromEnv() (Config, error) {
	config := Config{
		APIKey:    os.Getenv(EnvAPIKey),
		SecretKey: os.Getenv(EnvSecretKey),
		BaseURL:   getEnv(EnvBaseURL, DefaultBaseURL),
	}
	if raw, ok := os.LookupEnv(EnvTimeout); ok && raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, ErrConfig.New("invalid %s %q: %v", EnvTimeout, raw, err)
		}
		config.Timeout = timeout
	}
	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
