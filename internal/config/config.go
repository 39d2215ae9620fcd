package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the service configuration, loaded from the environment
type Config struct {
	Port           string  `envconfig:"PORT" default:"8080"`
	WebhookBaseURL string  `envconfig:"WEBHOOK_BASE_URL" default:"http://localhost:5678"`
	DeliveryFee    float64 `envconfig:"DELIVERY_FEE" default:"2.99"`
	DefaultAddress string  `envconfig:"DEFAULT_DELIVERY_ADDRESS" default:"Default Address"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
