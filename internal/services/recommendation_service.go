package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/models"
	"shoe-assistant-api/internal/repositories"
)

// MaxRecommendations is the number of catalog items shown per recommendation
const MaxRecommendations = 3

// PriceClarificationMessage is returned when a price limit contains no number
const PriceClarificationMessage = "I couldn’t understand the price you mentioned. Please specify a number like 'below 2000 rupees'."

// recommendationService implements the RecommendationService interface
type recommendationService struct {
	sessions repositories.SessionFactory
	logger   *logrus.Logger
	now      func() time.Time
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(sessions repositories.SessionFactory, logger *logrus.Logger) RecommendationService {
	return &recommendationService{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Recommend resolves the customer's preferences and returns up to three matching shoes
func (s *recommendationService) Recommend(ctx context.Context, req *RecommendationRequest) (string, error) {
	if req == nil {
		req = &RecommendationRequest{}
	}

	name := models.SanitizeString(req.Name)
	prefs := req.Preferences()

	var maxPrice *float64
	if priceLimit := strings.TrimSpace(req.PriceLimit); priceLimit != "" {
		limit, err := models.ExtractNumericValue(priceLimit)
		if err != nil {
			s.logger.WithError(err).Warn("Invalid price input")
			return PriceClarificationMessage, nil
		}
		// A zero ceiling means no price filter.
		if limit != 0 {
			maxPrice = &limit
		}
	}

	session, err := s.sessions.Open(ctx)
	if err != nil {
		return "", InfraError("recommend", err)
	}
	defer session.Close()

	if name != "" {
		resolved, question, err := s.resolvePreferences(ctx, session.Customers(), name, prefs)
		if err != nil {
			return "", err
		}
		if question != "" {
			return question, nil
		}
		prefs = resolved
	}

	shoes, err := session.Shoes().Search(ctx, models.NewShoeFilter(prefs, maxPrice))
	if err != nil {
		return "", InfraError("recommend", err)
	}

	s.logger.WithFields(logrus.Fields{
		"name":    name,
		"matches": len(shoes),
	}).Info("Catalog search completed")

	return FormatRecommendations(name, shoes), nil
}

// resolvePreferences backfills prefs from a stored customer, or creates the customer when
// all preferences are known. A non-empty question means the caller must ask for more input.
func (s *recommendationService) resolvePreferences(ctx context.Context, customers repositories.CustomerRepository, name string, prefs models.Preferences) (models.Preferences, string, error) {
	customer, err := customers.FindByName(ctx, name)
	switch {
	case err == nil:
		stored := customer.Preferences()
		if customer.FillMissingPreferences(prefs) {
			if err := customers.UpdatePreferences(ctx, customer); err != nil {
				return prefs, "", InfraError("recommend", err)
			}
			s.logger.WithField("customer_id", customer.ID).Info("Filled missing customer preferences")
		}
		return prefs.Backfill(stored), "", nil

	case repositories.IsNotFound(err):
		if missing := prefs.Missing(); len(missing) > 0 {
			return prefs, fmt.Sprintf("Hi %s, could you tell me your %s so I can recommend the perfect shoes for you?",
				name, strings.Join(missing, ", ")), nil
		}

		customer = models.NewCustomer(name, prefs, s.now().UTC())
		if err := customers.Create(ctx, customer); err != nil {
			return prefs, "", InfraError("recommend", err)
		}
		s.logger.WithFields(logrus.Fields{
			"customer_id": customer.ID,
			"name":        name,
		}).Info("New customer added")
		return prefs, "", nil

	default:
		return prefs, "", InfraError("recommend", err)
	}
}

// FormatRecommendations renders the first three shoes as a numbered list
func FormatRecommendations(name string, shoes []*models.Shoe) string {
	if name == "" {
		name = "there"
	}

	if len(shoes) == 0 {
		return fmt.Sprintf("Sorry %s, I couldn't find shoes matching your preferences right now.", name)
	}

	if len(shoes) > MaxRecommendations {
		shoes = shoes[:MaxRecommendations]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s! Based on your preferences, here are some shoes you might like:\n", name)
	for i, shoe := range shoes {
		fmt.Fprintf(&b, "%d. [Shoe ID %d] %s %s – %s – ₹%s\n",
			i+1, shoe.ID, shoe.ShoeType, shoe.ShoeStyle, shoe.Color, models.FormatPrice(shoe.Price))
	}

	return b.String()
}
