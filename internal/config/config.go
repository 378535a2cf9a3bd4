package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	LogFormat   string
	Database    DatabaseConfig
	AWS         AWSConfig
	Agent       AgentConfig
	Mail        MailConfig
	SMTP        SMTPConfig
	RateLimit   RateLimitConfig
}

// AWSConfig holds AWS SDK configuration
type AWSConfig struct {
	Region string
}

// AgentConfig identifies the conversational agent alias the gateway talks to
type AgentConfig struct {
	ID      string
	AliasID string
}

// MailConfig holds outbound email configuration
type MailConfig struct {
	Provider  string // "ses", "smtp" or "log"
	From      string
	Recipient string
}

// SMTPConfig holds SMTP relay configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// RateLimitConfig limits requests on the local development server
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Components that can be validated individually
const (
	ComponentAgent           = "agent"
	ComponentOrders          = "orders"
	ComponentRecommendations = "recommendations"
	ComponentRegistration    = "registration"
	ComponentServer          = "server"
)

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("DB_DRIVER", "sqlite3")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_NAME", "Shoeshop")
	viper.SetDefault("DB_PATH", "./data/shoeshop.db")
	viper.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("MAIL_PROVIDER", "log")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	connectTimeout, err := time.ParseDuration(viper.GetString("DB_CONNECT_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT: %w", err)
	}

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		LogFormat:   viper.GetString("LOG_FORMAT"),
		Database: DatabaseConfig{
			Driver:         viper.GetString("DB_DRIVER"),
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASSWORD"),
			Name:           viper.GetString("DB_NAME"),
			Path:           viper.GetString("DB_PATH"),
			ConnectTimeout: connectTimeout,
		},
		AWS: AWSConfig{
			Region: viper.GetString("AWS_REGION"),
		},
		Agent: AgentConfig{
			ID:      viper.GetString("AGENT_ID"),
			AliasID: viper.GetString("AGENT_ALIAS_ID"),
		},
		Mail: MailConfig{
			Provider:  viper.GetString("MAIL_PROVIDER"),
			From:      viper.GetString("MAIL_FROM"),
			Recipient: viper.GetString("MAIL_RECIPIENT"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// Validate checks that the values a component needs are present
func (c *Config) Validate(component string) error {
	switch component {
	case ComponentAgent:
		return c.Agent.Validate()
	case ComponentOrders:
		if err := c.Database.Validate(); err != nil {
			return err
		}
		return c.validateMail()
	case ComponentRecommendations, ComponentRegistration:
		return c.Database.Validate()
	case ComponentServer:
		if c.Port == "" {
			return fmt.Errorf("PORT cannot be empty")
		}
		if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1 {
			return fmt.Errorf("rate limit must allow at least one request")
		}
		if err := c.Database.Validate(); err != nil {
			return err
		}
		return c.validateMail()
	default:
		return fmt.Errorf("unknown component: %q", component)
	}
}

// Validate checks that the agent identifiers are set
func (a AgentConfig) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("AGENT_ID is required")
	}
	if a.AliasID == "" {
		return fmt.Errorf("AGENT_ALIAS_ID is required")
	}
	return nil
}

func (c *Config) validateMail() error {
	switch c.Mail.Provider {
	case "ses", "log":
	case "smtp":
		if c.SMTP.Host == "" {
			return fmt.Errorf("SMTP_HOST is required for the smtp mail provider")
		}
	default:
		return fmt.Errorf("unsupported MAIL_PROVIDER: %q", c.Mail.Provider)
	}

	if c.Mail.From == "" {
		return fmt.Errorf("MAIL_FROM is required")
	}
	if c.Mail.Recipient == "" {
		return fmt.Errorf("MAIL_RECIPIENT is required")
	}
	return nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
