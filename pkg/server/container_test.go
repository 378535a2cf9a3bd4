package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/config"
	"shoe-assistant-api/internal/services"
)

type stubAgent struct{}

func (stubAgent) InvokeAgent(ctx context.Context, sessionID, inputText string, onChunk func([]byte) error) error {
	return onChunk([]byte("ok"))
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8080",
		Database: config.DatabaseConfig{
			Driver: "sqlite3",
			Path:   filepath.Join(t.TempDir(), "container.db"),
		},
		Mail: config.MailConfig{Provider: "log", From: "store@example.com", Recipient: "orders@example.com"},
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

// TestNewContainer verifies that the container wires every service
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig(t), testLogger(), WithAgentClient(stubAgent{}))
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.OrderService == nil {
		t.Error("OrderService is nil")
	}
	if container.RecommendationService == nil {
		t.Error("RecommendationService is nil")
	}
	if container.RegistrationService == nil {
		t.Error("RegistrationService is nil")
	}
	if container.AgentService == nil {
		t.Error("AgentService is nil")
	}
	if _, ok := container.Mailer.(*services.LogMailer); !ok {
		t.Errorf("Expected log mailer, got %T", container.Mailer)
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

// TestContainerMailers verifies mailer selection by provider
func TestContainerMailers(t *testing.T) {
	awsCfg := aws.Config{Region: "us-east-1"}

	cfg := testConfig(t)
	cfg.Mail.Provider = "ses"
	container, err := NewContainer(context.Background(), cfg, testLogger(), WithAWSConfig(awsCfg))
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	if _, ok := container.Mailer.(*services.SESMailer); !ok {
		t.Errorf("Expected SES mailer, got %T", container.Mailer)
	}
	if container.AgentService != nil {
		t.Error("AgentService should be nil without an agent ID")
	}

	cfg = testConfig(t)
	cfg.Mail.Provider = "smtp"
	cfg.SMTP = config.SMTPConfig{Host: "localhost", Port: 2525}
	container, err = NewContainer(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	if _, ok := container.Mailer.(*services.SMTPMailer); !ok {
		t.Errorf("Expected SMTP mailer, got %T", container.Mailer)
	}

	cfg = testConfig(t)
	cfg.Mail.Provider = "fax"
	if _, err := NewContainer(context.Background(), cfg, testLogger()); err == nil {
		t.Error("Expected error for unsupported mail provider")
	}
}

// TestContainerBedrockClient verifies the agent client is built from configuration
func TestContainerBedrockClient(t *testing.T) {
	cfg := testConfig(t)
	cfg.Agent = config.AgentConfig{ID: "AGENT", AliasID: "ALIAS"}

	container, err := NewContainer(context.Background(), cfg, testLogger(), WithAWSConfig(aws.Config{Region: "us-east-1"}))
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	if _, ok := container.AgentClient.(*services.BedrockAgentClient); !ok {
		t.Errorf("Expected Bedrock agent client, got %T", container.AgentClient)
	}
}
