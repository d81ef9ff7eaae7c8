package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_PORT"` specify the environment variable name;
// `default:""` provides a value when the variable is not set.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	HttpServer ServerConfig
	Admin      AdminConfig
	Pricing    PricingConfig
	Assistant  AssistantConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// AdminConfig holds the back-office gate settings. The password is a single
// shared secret compared by exact match - a demo convenience, not a security
// boundary.
type AdminConfig struct {
	Password    string        `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	TokenSecret string        `envconfig:"ADMIN_TOKEN_SECRET" default:"storefront-demo-secret"`
	TokenTTL    time.Duration `envconfig:"ADMIN_TOKEN_TTL" default:"12h"`
}

// PricingConfig holds the delivery rule applied at checkout: DeliveryFee is
// charged unless the post-discount total exceeds FreeDeliveryOver.
type PricingConfig struct {
	DeliveryFee      float64 `envconfig:"PRICING_DELIVERY_FEE" default:"5.99"`
	FreeDeliveryOver float64 `envconfig:"PRICING_FREE_DELIVERY_OVER" default:"50"`
}

// AssistantConfig holds the settings of the external completion API the chat
// widget relays to. An empty APIKey leaves the assistant unconfigured; the
// relay then answers with a static fallback instead of calling out.
type AssistantConfig struct {
	APIKey  string        `envconfig:"ASSISTANT_API_KEY" default:""`
	Model   string        `envconfig:"ASSISTANT_MODEL" default:"gemini-2.5-flash"`
	BaseURL string        `envconfig:"ASSISTANT_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	Timeout time.Duration `envconfig:"ASSISTANT_TIMEOUT" default:"30s"`
}

var cfg Config

// Load initializes the configuration from environment variables.
// It should be called once during application startup.
func Load() (*Config, error) {
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	return &cfg, nil
}
