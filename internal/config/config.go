package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	AccessTokenTTLMin  int    `mapstructure:"ACCESS_TOKEN_TTL_MINUTES"`
	RefreshTokenTTLDay int    `mapstructure:"REFRESH_TOKEN_TTL_DAYS"`

	// Azure OpenAI (reasoning service)
	OpenAIEndpoint         string  `mapstructure:"AZURE_OPENAI_ENDPOINT"`
	OpenAIAPIKey           string  `mapstructure:"AZURE_OPENAI_API_KEY"`
	OpenAIDeployment       string  `mapstructure:"AZURE_OPENAI_DEPLOYMENT"`
	OpenAIVisionDeployment string  `mapstructure:"AZURE_OPENAI_VISION_DEPLOYMENT"`
	OpenAIAPIVersion       string  `mapstructure:"AZURE_OPENAI_API_VERSION"`
	OpenAITemperature      float64 `mapstructure:"AZURE_OPENAI_TEMPERATURE"`

	// Physician registry
	NPIRegistryURL string `mapstructure:"NPI_REGISTRY_URL"`

	// Uploads
	MaxUploadMB int `mapstructure:"MAX_UPLOAD_MB"`

	// Rate limiting
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// Request handling
	RequestTimeoutSec int `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 30)
	v.SetDefault("REFRESH_TOKEN_TTL_DAYS", 7)
	v.SetDefault("AZURE_OPENAI_DEPLOYMENT", "gpt-4")
	v.SetDefault("AZURE_OPENAI_VISION_DEPLOYMENT", "gpt-4-vision")
	v.SetDefault("AZURE_OPENAI_API_VERSION", "2024-02-15-preview")
	v.SetDefault("AZURE_OPENAI_TEMPERATURE", 0.3)
	v.SetDefault("NPI_REGISTRY_URL", "https://npiregistry.cms.hhs.gov/api")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 120)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"CORS_ORIGINS", "JWT_SECRET", "ACCESS_TOKEN_TTL_MINUTES",
		"REFRESH_TOKEN_TTL_DAYS", "AZURE_OPENAI_ENDPOINT",
		"AZURE_OPENAI_API_KEY", "AZURE_OPENAI_DEPLOYMENT",
		"AZURE_OPENAI_VISION_DEPLOYMENT", "AZURE_OPENAI_API_VERSION",
		"AZURE_OPENAI_TEMPERATURE", "NPI_REGISTRY_URL", "MAX_UPLOAD_MB",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REQUEST_TIMEOUT_SECONDS",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AccessTokenTTL returns the access token lifetime as a duration.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMin) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime as a duration.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLDay) * 24 * time.Hour
}

// RequestTimeout returns the per-request deadline applied by the HTTP layer.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// MaxUploadBytes converts the configured upload cap to bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Validate checks that the configuration is safe to run. Outside development
// a JWT secret and the reasoning-service credentials are mandatory; refusing
// to start beats issuing unverifiable tokens or failing on the first request.
func (c *Config) Validate() error {
	if !c.IsDev() {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when ENV=%q", c.Env)
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.JWTSecret))
		}
		if c.OpenAIEndpoint == "" || c.OpenAIAPIKey == "" {
			return fmt.Errorf("AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY are required when ENV=%q", c.Env)
		}
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}
