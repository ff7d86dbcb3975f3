package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Supabase
	SupabaseURL            string `env:"SUPABASE_URL"`
	SupabasePublishableKey string `env:"SUPABASE_PUBLISHABLE_KEY"`
	SupabaseJWTSecret      string `env:"SUPABASE_JWT_SECRET"`
	SupabaseStorageBucket  string `env:"SUPABASE_STORAGE_BUCKET" envDefault:"order-images"`
	WatermarkBucket        string `env:"WATERMARK_BUCKET" envDefault:"watermarks"`

	// Edge functions (payment intents, referrals, password reset)
	EdgeFunctionBaseURL  string `env:"EDGE_FUNCTION_BASE_URL"`
	EdgeFunctionKey      string `env:"EDGE_FUNCTION_KEY"`
	PaymentWebhookSecret string `env:"PAYMENT_WEBHOOK_SECRET"`

	// Database
	DatabaseURL string `env:"DATABASE_URL"`

	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Session policy
	AdminReverifyInterval time.Duration `env:"ADMIN_REVERIFY_INTERVAL" envDefault:"30m"`
	ChatSessionTTL        time.Duration `env:"CHAT_SESSION_TTL" envDefault:"1h"`
	DraftIdleTTL          time.Duration `env:"DRAFT_IDLE_TTL" envDefault:"24h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.EdgeFunctionBaseURL == "" {
		return fmt.Errorf("EDGE_FUNCTION_BASE_URL is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}
