package config

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DB_PATH", "MAIL_PROVIDER", "LOG_LEVEL", "DB_CONNECT_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("Expected default driver sqlite3, got %s", cfg.Database.Driver)
	}
	if cfg.Database.ConnectTimeout != 5*time.Second {
		t.Errorf("Expected default connect timeout 5s, got %v", cfg.Database.ConnectTimeout)
	}
	if cfg.Mail.Provider != "log" {
		t.Errorf("Expected default mail provider log, got %s", cfg.Mail.Provider)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_HOST", "shoes.cluster.local")
	t.Setenv("DB_USER", "admin")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_CONNECT_TIMEOUT", "3s")
	t.Setenv("AGENT_ID", "AGENT123")
	t.Setenv("AGENT_ALIAS_ID", "ALIAS456")
	t.Setenv("MAIL_PROVIDER", "ses")
	t.Setenv("MAIL_FROM", "store@example.com")
	t.Setenv("MAIL_RECIPIENT", "orders@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Agent.ID != "AGENT123" || cfg.Agent.AliasID != "ALIAS456" {
		t.Errorf("Unexpected agent config: %+v", cfg.Agent)
	}

	dsn := cfg.Database.DSN()
	if !strings.HasPrefix(dsn, "admin:secret@tcp(shoes.cluster.local:3306)/Shoeshop") {
		t.Errorf("Unexpected DSN: %s", dsn)
	}

	for _, component := range []string{ComponentAgent, ComponentOrders, ComponentRecommendations, ComponentRegistration} {
		if err := cfg.Validate(component); err != nil {
			t.Errorf("Validate(%s) failed: %v", component, err)
		}
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("DB_CONNECT_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an unparseable timeout")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:      "8081",
			Database:  DatabaseConfig{Driver: "sqlite3", Path: "./data/shoeshop.db"},
			Mail:      MailConfig{Provider: "log", From: "a@example.com", Recipient: "b@example.com"},
			RateLimit: RateLimitConfig{RequestsPerSecond: 5, Burst: 5},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		component string
		wantErr   string
	}{
		{"server ok", func(c *Config) {}, ComponentServer, ""},
		{"agent needs id", func(c *Config) {}, ComponentAgent, "AGENT_ID"},
		{"orders need recipient", func(c *Config) { c.Mail.Recipient = "" }, ComponentOrders, "MAIL_RECIPIENT"},
		{"smtp needs host", func(c *Config) { c.Mail.Provider = "smtp" }, ComponentOrders, "SMTP_HOST"},
		{"unknown mail provider", func(c *Config) { c.Mail.Provider = "pigeon" }, ComponentOrders, "MAIL_PROVIDER"},
		{"mysql needs host", func(c *Config) { c.Database.Driver = "mysql" }, ComponentRegistration, "DB_HOST"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, ComponentRecommendations, "DB_DRIVER"},
		{"registration ignores mail", func(c *Config) { c.Mail = MailConfig{} }, ComponentRegistration, ""},
		{"zero rate limit", func(c *Config) { c.RateLimit.Burst = 0 }, ComponentServer, "rate limit"},
		{"unknown component", func(c *Config) {}, "billing", "unknown component"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate(tt.component)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestAdaptForLambda(t *testing.T) {
	cfg := &Config{
		Environment: "development",
		LogFormat:   "text",
		Database:    DatabaseConfig{Driver: "sqlite3", Host: "rds.local"},
		Mail:        MailConfig{Provider: "log"},
		AWS:         AWSConfig{Region: "us-east-1"},
	}

	adapted := adaptForLambda(cfg, &ServerlessConfig{IsLambda: true, Region: "ap-south-1", Stage: "prod"})

	if adapted.LogFormat != "json" {
		t.Errorf("Expected json logs, got %s", adapted.LogFormat)
	}
	if adapted.Database.Driver != "mysql" {
		t.Errorf("Expected mysql driver, got %s", adapted.Database.Driver)
	}
	if adapted.Mail.Provider != "ses" {
		t.Errorf("Expected ses mail, got %s", adapted.Mail.Provider)
	}
	if adapted.AWS.Region != "ap-south-1" || adapted.Environment != "prod" {
		t.Errorf("Unexpected region/environment: %s/%s", adapted.AWS.Region, adapted.Environment)
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{LogLevel: "debug", LogFormat: "json"})
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected JSON formatter, got %T", logger.Formatter)
	}

	fallback := NewLogger(&Config{LogLevel: "loud"})
	if fallback.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info fallback, got %s", fallback.GetLevel())
	}
}
