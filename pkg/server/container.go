package server

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/config"
	"shoe-assistant-api/internal/database"
	"shoe-assistant-api/internal/repositories"
	"shoe-assistant-api/internal/repositories/sqldb"
	"shoe-assistant-api/internal/services"
)

// Container holds all application dependencies. The mail and agent clients are created
// once and shared by every invocation; database connections are opened per invocation.
type Container struct {
	Config                *config.Config
	Logger                *logrus.Logger
	Connector             *database.Connector
	Sessions              repositories.SessionFactory
	Mailer                services.Mailer
	AgentClient           services.AgentClient
	OrderService          services.OrderService
	RecommendationService services.RecommendationService
	RegistrationService   services.RegistrationService
	AgentService          services.AgentService

	awsConfig *aws.Config
}

// Option customizes a container before its services are built
type Option func(*Container)

// WithMailer replaces the configured mailer
func WithMailer(mailer services.Mailer) Option {
	return func(c *Container) { c.Mailer = mailer }
}

// WithAgentClient replaces the configured agent client
func WithAgentClient(client services.AgentClient) Option {
	return func(c *Container) { c.AgentClient = client }
}

// WithAWSConfig uses cfg instead of loading the default AWS configuration
func WithAWSConfig(cfg aws.Config) Option {
	return func(c *Container) { c.awsConfig = &cfg }
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Connector = database.NewConnector(cfg.Database.ToConnectionConfig(logger))
	c.Sessions = sqldb.NewSessionFactory(c.Connector, logger)

	if c.Mailer == nil {
		mailer, err := c.newMailer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create mailer: %w", err)
		}
		c.Mailer = mailer
	}

	if c.AgentClient == nil && cfg.Agent.ID != "" {
		awsCfg, err := c.loadAWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		c.AgentClient = services.NewBedrockAgentClient(bedrockagentruntime.NewFromConfig(awsCfg), cfg.Agent.ID, cfg.Agent.AliasID)
	}

	c.OrderService = services.NewOrderService(c.Sessions, c.Mailer, services.OrderConfig{
		Sender:    cfg.Mail.From,
		Recipient: cfg.Mail.Recipient,
	}, logger)
	c.RecommendationService = services.NewRecommendationService(c.Sessions, logger)
	c.RegistrationService = services.NewRegistrationService(c.Sessions, logger)
	if c.AgentClient != nil {
		c.AgentService = services.NewAgentService(c.AgentClient, logger)
	}

	return c, nil
}

func (c *Container) newMailer(ctx context.Context) (services.Mailer, error) {
	switch c.Config.Mail.Provider {
	case services.MailProviderSES:
		awsCfg, err := c.loadAWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		return services.NewSESMailer(sesv2.NewFromConfig(awsCfg), c.Logger), nil
	case services.MailProviderSMTP:
		return services.NewSMTPMailer(&services.SMTPConfig{
			Host:     c.Config.SMTP.Host,
			Port:     c.Config.SMTP.Port,
			Username: c.Config.SMTP.Username,
			Password: c.Config.SMTP.Password,
		}, c.Logger), nil
	case services.MailProviderLog, "":
		return services.NewLogMailer(c.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported mail provider: %q", c.Config.Mail.Provider)
	}
}

// loadAWSConfig loads the shared AWS configuration once
func (c *Container) loadAWSConfig(ctx context.Context) (aws.Config, error) {
	if c.awsConfig != nil {
		return *c.awsConfig, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.AWS.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	c.awsConfig = &awsCfg

	return awsCfg, nil
}

// Close releases container resources. Database connections are per invocation, so
// there is nothing pooled to close.
func (c *Container) Close() error {
	return nil
}
