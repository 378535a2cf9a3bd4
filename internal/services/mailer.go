package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/sirupsen/logrus"
)

// Mail providers
const (
	MailProviderSES  = "ses"
	MailProviderSMTP = "smtp"
	MailProviderLog  = "log"
)

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SESAPI is the part of the SES v2 client used for sending
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer sends email through Amazon SES
type SESMailer struct {
	client SESAPI
	logger *logrus.Logger
}

// NewSESMailer creates a mailer backed by an SES v2 client
func NewSESMailer(client SESAPI, logger *logrus.Logger) *SESMailer {
	return &SESMailer{client: client, logger: logger}
}

// Send sends msg as a simple plain-text email
func (m *SESMailer) Send(ctx context.Context, msg *EmailMessage) error {
	if err := checkMessage(msg); err != nil {
		return err
	}

	out, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(msg.Subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(msg.Body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"recipient":  msg.To,
		"message_id": aws.ToString(out.MessageId),
	}).Info("Email sent")

	return nil
}

// SMTPMailer sends email through an SMTP relay
type SMTPMailer struct {
	config *SMTPConfig
	logger *logrus.Logger
}

// NewSMTPMailer creates a mailer backed by an SMTP server
func NewSMTPMailer(config *SMTPConfig, logger *logrus.Logger) *SMTPMailer {
	return &SMTPMailer{config: config, logger: logger}
}

// Send sends msg as a plain-text email
func (m *SMTPMailer) Send(ctx context.Context, msg *EmailMessage) error {
	if err := checkMessage(msg); err != nil {
		return err
	}
	if m.config == nil || m.config.Host == "" {
		return fmt.Errorf("SMTP configuration not set")
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.Username != "" && m.config.Password != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	if err := smtp.SendMail(addr, auth, msg.From, []string{msg.To}, formatSMTPMessage(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.WithField("recipient", msg.To).Info("Email sent")
	return nil
}

// TestConnection dials the SMTP server and authenticates if credentials are set
func (m *SMTPMailer) TestConnection(ctx context.Context) error {
	if m.config == nil || m.config.Host == "" {
		return fmt.Errorf("SMTP configuration not set")
	}

	client, err := smtp.Dial(fmt.Sprintf("%s:%d", m.config.Host, m.config.Port))
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if m.config.Username != "" && m.config.Password != "" {
		auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	return nil
}

func formatSMTPMessage(msg *EmailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogMailer writes emails to the log instead of sending them. Used locally.
type LogMailer struct {
	logger *logrus.Logger
}

// NewLogMailer creates a mailer that only logs
func NewLogMailer(logger *logrus.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs msg
func (m *LogMailer) Send(ctx context.Context, msg *EmailMessage) error {
	if err := checkMessage(msg); err != nil {
		return err
	}

	m.logger.WithFields(logrus.Fields{
		"from":      msg.From,
		"recipient": msg.To,
		"subject":   msg.Subject,
	}).Info(msg.Body)

	return nil
}

func checkMessage(msg *EmailMessage) error {
	if msg == nil {
		return fmt.Errorf("email message cannot be nil")
	}
	if strings.TrimSpace(msg.From) == "" {
		return fmt.Errorf("email sender cannot be empty")
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("email recipient cannot be empty")
	}
	return nil
}
