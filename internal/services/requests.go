package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"shoe-assistant-api/internal/models"
)

// OrderRequest holds the parameters of an order invocation
type OrderRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	ShoeID     string `json:"shoe_id"`
	Operation  string `json:"operation" validate:"required"`
}

// RecommendationRequest holds the parameters of a recommendation invocation.
// Every field is optional.
type RecommendationRequest struct {
	Name         string `json:"name"`
	ShoeSize     string `json:"shoe_size"`
	ActivityType string `json:"activity_type"`
	ShoeColor    string `json:"shoe_color"`
	PriceLimit   string `json:"price_limit"`
}

// Preferences returns the catalog attributes supplied in the request
func (r *RecommendationRequest) Preferences() models.Preferences {
	return models.Preferences{
		ActivityType: models.SanitizeString(r.ActivityType),
		ShoeSize:     models.SanitizeString(r.ShoeSize),
		ShoeColor:    models.SanitizeString(r.ShoeColor),
	}
}

// RegistrationRequest holds the parameters of a registration invocation
type RegistrationRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" label:"email" validate:"required,contact_email"`
	PhoneNumber string `json:"phone_number" label:"phone number" validate:"required,contact_phone"`
}

// ConversationRequest is the body of an agent gateway request
type ConversationRequest struct {
	UserName  string `json:"user_name"`
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// UnmarshalJSON accepts user_name and session_id as strings or numbers
func (r *ConversationRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserName  json.RawMessage `json:"user_name"`
		Query     string          `json:"query"`
		SessionID json.RawMessage `json:"session_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	userName, err := scalarString(raw.UserName)
	if err != nil {
		return fmt.Errorf("user_name: %w", err)
	}
	sessionID, err := scalarString(raw.SessionID)
	if err != nil {
		return fmt.Errorf("session_id: %w", err)
	}

	r.UserName = userName
	r.Query = raw.Query
	r.SessionID = sessionID
	return nil
}

// scalarString returns a JSON string or number as text. Absent and null are empty.
func scalarString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", errors.New("expected a string or number")
	}
	return number.String(), nil
}

// ConversationResponse is the body of a successful agent gateway response
type ConversationResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// newValidator creates a validator that knows the contact format rules and reports
// fields by their label tag, falling back to the json name
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})

	_ = v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return models.IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("contact_phone", func(fl validator.FieldLevel) bool {
		return models.IsValidPhone(fl.Field().String())
	})

	return v
}

// fieldFailures groups validation failures by tag, keeping struct field order
func fieldFailures(err error) map[string][]string {
	failures := make(map[string][]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return failures
	}

	for _, fe := range validationErrs {
		failures[fe.Tag()] = append(failures[fe.Tag()], fe.Field())
	}
	return failures
}
