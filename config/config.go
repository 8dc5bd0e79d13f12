package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the smoke-test harness.
type Config struct {
	// Target application
	AppBaseURL string `env:"APP_BASE_URL,default=http://localhost:3000"`

	// LLM gateway (OpenRouter-compatible)
	GatewayBaseURL string `env:"GATEWAY_BASE_URL,default=https://openrouter.ai/api/v1"`
	GatewayAPIKey  string `env:"OPENROUTER_API_KEY"`
	GatewayModel   string `env:"GATEWAY_MODEL,default=openai/gpt-4o-mini"`

	// Attribution headers the gateway expects from applications
	GatewayReferer string `env:"GATEWAY_REFERER,default=http://localhost:3000"`
	GatewayTitle   string `env:"GATEWAY_APP_TITLE,default=BI Forecasting App"`

	// ReportTimeout bounds the report-generation and chat-completion calls;
	// ProbeTimeout bounds the availability, key-validation, and negative checks.
	ReportTimeout time.Duration `env:"REPORT_TIMEOUT,default=30s"`
	ProbeTimeout  time.Duration `env:"PROBE_TIMEOUT,default=10s"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
