package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/models"
	"shoe-assistant-api/internal/repositories"
)

// Registration replies for rejected contact details
const (
	InvalidEmailMessage = "The email address provided is invalid. Please provide a valid email."
	InvalidPhoneMessage = "The phone number provided is invalid. Please provide a valid phone number."
)

// registrationService implements the RegistrationService interface
type registrationService struct {
	sessions  repositories.SessionFactory
	validator *validator.Validate
	logger    *logrus.Logger
	now       func() time.Time
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(sessions repositories.SessionFactory, logger *logrus.Logger) RegistrationService {
	return &registrationService{
		sessions:  sessions,
		validator: newValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

// Register attaches a contact row to the named customer, creating the customer if needed.
// Incomplete or malformed details produce a clarification reply, not an error.
func (s *registrationService) Register(ctx context.Context, req *RegistrationRequest) (string, error) {
	if req == nil {
		req = &RegistrationRequest{}
	}

	req.Name = models.SanitizeString(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	if reply := s.checkRequest(req); reply != "" {
		return reply, nil
	}

	session, err := s.sessions.Open(ctx)
	if err != nil {
		return "", InfraError("register", err)
	}
	defer session.Close()

	customerID, err := s.resolveCustomerID(ctx, session.Customers(), req.Name)
	if err != nil {
		return "", err
	}

	contact := &models.CustomerContact{
		CustomerID:  customerID,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := session.Contacts().Create(ctx, contact); err != nil {
		return "", InfraError("register", err)
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id": customerID,
		"name":        req.Name,
	}).Info("New user registered with contact info")

	return fmt.Sprintf("Thanks %s! You’re successfully registered. Now let’s get your preferences to recommend shoes!", req.Name), nil
}

// checkRequest returns the clarification for missing or malformed fields, or "" if the
// request is complete
func (s *registrationService) checkRequest(req *RegistrationRequest) string {
	err := s.validator.Struct(req)
	if err == nil {
		return ""
	}

	failures := fieldFailures(err)
	if missing := failures["required"]; len(missing) > 0 {
		return fmt.Sprintf("Please provide your %s to proceed with registration.", strings.Join(missing, ", "))
	}
	if len(failures["contact_email"]) > 0 {
		return InvalidEmailMessage
	}
	if len(failures["contact_phone"]) > 0 {
		return InvalidPhoneMessage
	}

	return "Please check your registration details and try again."
}

// resolveCustomerID finds the customer by name or inserts a placeholder and reads it back.
// Two concurrent registrations of a new name both insert; the newest row wins later lookups.
func (s *registrationService) resolveCustomerID(ctx context.Context, customers repositories.CustomerRepository, name string) (int64, error) {
	customer, err := customers.FindByName(ctx, name)
	if err == nil {
		return customer.ID, nil
	}
	if !repositories.IsNotFound(err) {
		return 0, InfraError("register", err)
	}

	if err := customers.CreatePlaceholder(ctx, models.NewPlaceholderCustomer(name, s.now().UTC())); err != nil {
		return 0, InfraError("register", err)
	}

	customer, err = customers.FindByName(ctx, name)
	if err != nil {
		return 0, InfraError("register", err)
	}

	return customer.ID, nil
}
